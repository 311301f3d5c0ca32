package runner

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
)

const windows = "windows"

// processEnv builds the child environment: the current process environment,
// the resolved variables and the activation of target on top.
func (r *Runner) processEnv(project *domain.Project, cmd *domain.Command, t *target) ([]string, error) {
	base := r.environ()
	isWindows := r.goos == windows

	dotenv, err := r.repo.LoadDotenv(project.Root)
	if err != nil {
		return nil, err
	}

	scopes := domain.VariableScopes{
		Project: projectVariables(project, t.spec),
		Command: cmd.Variables,
		Dotenv:  dotenv,
	}
	scopes.Shell = shellScope(base, scopes, isWindows)

	resolved, missing := domain.ResolveVariables(scopes)
	if len(missing) > 0 {
		return nil, &domain.MissingVariablesError{Names: missing}
	}

	env := base
	for _, k := range slices.Sorted(maps.Keys(resolved)) {
		env = setEnv(env, k, resolved[k], isWindows)
	}

	key, path := lookupEnv(env, "PATH", isWindows)
	if key == "" {
		key = "PATH"
	}
	env = setEnv(env, key, prependPath(binDirs(t.prefix, isWindows), path, isWindows), isWindows)
	env = setEnv(env, "CONDA_PREFIX", t.prefix, isWindows)
	env = setEnv(env, "CONDA_DEFAULT_ENV", t.name, isWindows)
	return env, nil
}

// projectVariables layers the variables declared by the environment files below
// the project variables. They fill in project variables without a default.
func projectVariables(project *domain.Project, spec *domain.EnvironmentSpec) map[string]*string {
	vars := make(map[string]*string, len(project.Variables))
	if spec != nil {
		for _, src := range spec.Sources {
			for k, v := range src.Variables {
				vars[k] = domain.StringPtr(v)
			}
		}
	}
	for k, v := range project.Variables {
		if v == nil && vars[k] != nil {
			continue
		}
		vars[k] = v
	}
	return vars
}

// binDirs returns the executable directories of a prefix in search order.
func binDirs(prefix string, isWindows bool) []string {
	if !isWindows {
		return []string{filepath.Join(prefix, "bin")}
	}
	return []string{
		prefix,
		filepath.Join(prefix, "Library", "mingw-w64", "bin"),
		filepath.Join(prefix, "Library", "usr", "bin"),
		filepath.Join(prefix, "Library", "bin"),
		filepath.Join(prefix, "Scripts"),
		filepath.Join(prefix, "bin"),
	}
}

func prependPath(dirs []string, path string, isWindows bool) string {
	sep := ":"
	if isWindows {
		sep = ";"
	}
	if path == "" {
		return strings.Join(dirs, sep)
	}
	return strings.Join(dirs, sep) + sep + path
}

func sameKey(a, b string, isWindows bool) bool {
	if isWindows {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// lookupEnv returns the key as spelled in env and its value. The last entry wins.
func lookupEnv(env []string, key string, isWindows bool) (string, string) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(env[i], "=")
		if ok && sameKey(k, key, isWindows) {
			return k, v
		}
	}
	return "", ""
}

// setEnv replaces every entry for key in env, keeping the position of the first one.
func setEnv(env []string, key, value string, isWindows bool) []string {
	out := make([]string, 0, len(env)+1)
	set := false
	for _, kv := range env {
		k, _, ok := strings.Cut(kv, "=")
		if ok && sameKey(k, key, isWindows) {
			if !set {
				out = append(out, k+"="+value)
				set = true
			}
			continue
		}
		out = append(out, kv)
	}
	if !set {
		out = append(out, key+"="+value)
	}
	return out
}

// shellScope picks the values of the declared variables from env, matching
// names the way the target platform does.
func shellScope(env []string, scopes domain.VariableScopes, isWindows bool) map[string]string {
	shell := make(map[string]string)
	lookup := func(name string) {
		if k, v := lookupEnv(env, name, isWindows); k != "" {
			shell[name] = v
		}
	}
	for k := range scopes.Project {
		lookup(k)
	}
	for k := range scopes.Command {
		lookup(k)
	}
	for k := range scopes.Dotenv {
		lookup(k)
	}
	return shell
}

package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PipPrefix marks a dependency that belongs to the pip section.
const PipPrefix = "@pip::"

// Init creates a project in dir. It returns false if a project document already exists.
func (l *Loader) Init(dir string, opts ports.InitOptions) (bool, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "directory", dir)
	}

	for _, name := range []string{domain.ProjectFileName, domain.ProjectFileNameAlt} {
		if l.exists(filepath.Join(root, name)) {
			l.Logger.Info("project document already exists in " + root)
			return false, nil
		}
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(root)
	}
	channels := opts.Channels
	if len(channels) == 0 {
		channels = []string{domain.DefaultChannel}
	}

	envFile := EnvironmentFile{
		Name:         domain.DefaultEnvironmentName,
		Channels:     channels,
		Dependencies: DependencyList{Conda: opts.Dependencies},
		Platforms:    opts.Platforms,
	}
	if err := l.writeYAML(filepath.Join(root, domain.EnvironmentFileName), envFile); err != nil {
		return false, err
	}

	doc := ProjectDocument{
		Name: name,
		Environments: EnvironmentsSection{
			{Name: domain.DefaultEnvironmentName, Sources: []string{domain.EnvironmentFileName}},
		},
	}
	if err := l.writeYAML(filepath.Join(root, domain.ProjectFileName), doc); err != nil {
		return false, err
	}

	if len(opts.Condarc) > 0 {
		if err := l.writeYAML(filepath.Join(root, domain.CondarcFileName), condarcNode(opts.Condarc)); err != nil {
			return false, err
		}
	}

	return true, nil
}

// AddDependencies adds dependencies and channels to the first source file of env.
// A dependency whose package name is already listed replaces the existing entry.
func (l *Loader) AddDependencies(env *domain.Environment, edit ports.DependencyEdit) ([]string, error) {
	path, doc, mapping, err := l.editableSource(env)
	if err != nil {
		return nil, err
	}

	condaDeps, pipDeps := splitPip(edit.Dependencies)
	deps := mappingValue(mapping, "dependencies", yaml.SequenceNode)

	var warnings []string
	for _, dep := range condaDeps {
		upsertScalar(deps, dep, packageName)
	}

	if len(pipDeps) > 0 {
		if !containsPackage(deps, domain.PipManager) {
			deps.Content = append(deps.Content, stringNode(domain.PipManager))
			warnings = append(warnings, fmt.Sprintf("added %s to the conda dependencies of %s to install pip packages",
				domain.PipManager, filepath.Base(path)))
		}
		pip := pipSection(deps)
		for _, dep := range pipDeps {
			upsertScalar(pip, dep, pipPackageName)
		}
	}

	if len(edit.Channels) > 0 {
		channels := mappingValue(mapping, "channels", yaml.SequenceNode)
		for _, ch := range edit.Channels {
			if !slices.ContainsFunc(channels.Content, func(n *yaml.Node) bool { return n.Value == ch }) {
				channels.Content = append(channels.Content, stringNode(ch))
			}
		}
	}

	return warnings, l.writeYAML(path, doc)
}

// RemoveDependencies removes dependencies by package name from the first source file of env.
func (l *Loader) RemoveDependencies(env *domain.Environment, edit ports.DependencyEdit) error {
	path, doc, mapping, err := l.editableSource(env)
	if err != nil {
		return err
	}

	condaDeps, pipDeps := splitPip(edit.Dependencies)
	deps := mappingValue(mapping, "dependencies", yaml.SequenceNode)

	for _, dep := range condaDeps {
		removeScalar(deps, packageName(dep), packageName)
	}
	if len(pipDeps) > 0 {
		pip := pipSection(deps)
		for _, dep := range pipDeps {
			removeScalar(pip, pipPackageName(dep), pipPackageName)
		}
	}

	return l.writeYAML(path, doc)
}

// editableSource reads the first source file of env. It returns the document node,
// which keeps the file comments, and its top-level mapping.
func (l *Loader) editableSource(env *domain.Environment) (path string, doc, mapping *yaml.Node, err error) {
	if len(env.Sources) == 0 {
		return "", nil, nil, zerr.With(zerr.Wrap(domain.ErrEmptyEnvironment, "cannot edit environment"), "environment", env.Name)
	}
	path = env.Sources[0]

	data, err := l.FS.ReadFile(path)
	if err != nil {
		return "", nil, nil, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, err.Error()), "path", path)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return "", nil, nil, zerr.With(zerr.Wrap(domain.ErrSourceParseFailed, err.Error()), "path", path)
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return "", nil, nil, zerr.With(zerr.Wrap(domain.ErrSourceParseFailed, "environment file must be a mapping"), "path", path)
	}
	return path, &root, root.Content[0], nil
}

// mappingValue returns the value of key in mapping, creating it with kind when absent.
func mappingValue(mapping *yaml.Node, key string, kind yaml.Kind) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			value := mapping.Content[i+1]
			if value.Kind != kind {
				// "dependencies:" with no value decodes as a null scalar.
				*value = yaml.Node{Kind: kind}
			}
			return value
		}
	}
	value := &yaml.Node{Kind: kind}
	mapping.Content = append(mapping.Content, stringNode(key), value)
	return value
}

// pipSection returns the sequence of the {pip: [...]} entry in deps, creating it when absent.
func pipSection(deps *yaml.Node) *yaml.Node {
	for _, item := range deps.Content {
		if item.Kind == yaml.MappingNode && len(item.Content) == 2 && item.Content[0].Value == domain.PipManager {
			if item.Content[1].Kind != yaml.SequenceNode {
				item.Content[1] = &yaml.Node{Kind: yaml.SequenceNode}
			}
			return item.Content[1]
		}
	}
	pip := &yaml.Node{Kind: yaml.SequenceNode}
	deps.Content = append(deps.Content, &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{stringNode(domain.PipManager), pip},
	})
	return pip
}

func upsertScalar(seq *yaml.Node, spec string, nameOf func(string) string) {
	name := nameOf(spec)
	for _, item := range seq.Content {
		if item.Kind == yaml.ScalarNode && nameOf(item.Value) == name {
			item.Value = spec
			return
		}
	}
	seq.Content = append(seq.Content, stringNode(spec))
}

func removeScalar(seq *yaml.Node, name string, nameOf func(string) string) {
	seq.Content = slices.DeleteFunc(seq.Content, func(item *yaml.Node) bool {
		return item.Kind == yaml.ScalarNode && nameOf(item.Value) == name
	})
}

func containsPackage(seq *yaml.Node, name string) bool {
	return slices.ContainsFunc(seq.Content, func(item *yaml.Node) bool {
		return item.Kind == yaml.ScalarNode && packageName(item.Value) == name
	})
}

func splitPip(deps []string) (conda, pip []string) {
	for _, dep := range deps {
		if rest, ok := strings.CutPrefix(dep, PipPrefix); ok {
			pip = append(pip, rest)
			continue
		}
		conda = append(conda, dep)
	}
	return conda, pip
}

// packageName extracts the package name from a conda match spec such as
// "conda-forge::numpy>=1.26" or "python 3.11.*".
func packageName(spec string) string {
	if _, rest, ok := strings.Cut(spec, "::"); ok {
		spec = rest
	}
	if i := strings.IndexAny(spec, " =<>!~[;"); i >= 0 {
		spec = spec[:i]
	}
	return strings.ToLower(strings.TrimSpace(spec))
}

// pipPackageName extracts the distribution name from a pip requirement, normalizing
// "_" and "." to "-".
func pipPackageName(spec string) string {
	if i := strings.IndexAny(spec, " =<>!~[;@"); i >= 0 {
		spec = spec[:i]
	}
	name := strings.ToLower(strings.TrimSpace(spec))
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}

func condarcNode(values map[string]string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		value := &yaml.Node{Kind: yaml.ScalarNode, Value: values[k]}
		node.Content = append(node.Content, stringNode(k), value)
	}
	return node
}

func (l *Loader) writeYAML(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrProjectWriteFailed, err.Error()), "path", path)
	}
	if err := enc.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrProjectWriteFailed, err.Error()), "path", path)
	}
	if err := l.FS.WriteFile(path, buf.Bytes()); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrProjectWriteFailed, err.Error()), "path", path)
	}
	return nil
}

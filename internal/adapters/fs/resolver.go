package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallRootResolver = (*Resolver)(nil)

// Resolver picks the install root from an ordered search path.
type Resolver struct {
	logger    ports.Logger
	separator string
}

// NewResolver creates a Resolver that splits search paths on the OS list separator.
func NewResolver(logger ports.Logger) *Resolver {
	return NewResolverWithSeparator(logger, string(os.PathListSeparator))
}

// NewResolverWithSeparator creates a Resolver that splits search paths on separator.
func NewResolverWithSeparator(logger ports.Logger, separator string) *Resolver {
	return &Resolver{logger: logger, separator: separator}
}

// searchEntry is one non-empty entry of a search path.
type searchEntry struct {
	raw      string
	absolute bool
}

// ParseSearchPath splits list on separator and drops empty entries.
func ParseSearchPath(list, separator string) []string {
	entries := parseSearchPath(list, separator)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.raw)
	}
	return paths
}

func parseSearchPath(list, separator string) []searchEntry {
	var entries []searchEntry
	for _, part := range strings.Split(list, separator) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		entries = append(entries, searchEntry{raw: part, absolute: filepath.IsAbs(part)})
	}
	return entries
}

func (e searchEntry) resolve(projectRoot string) string {
	if e.absolute {
		return filepath.Clean(e.raw)
	}
	return filepath.Join(projectRoot, e.raw)
}

// ResolveInstallRoot returns the first writable entry of searchPath.
// Missing directories are created; the first entry that can hold files wins.
func (r *Resolver) ResolveInstallRoot(projectRoot, envName, searchPath string) (string, error) {
	entries := parseSearchPath(searchPath, r.separator)
	for _, entry := range entries {
		dir := entry.resolve(projectRoot)
		if err := probeWritable(dir); err != nil {
			r.logger.Debug("skipping install root " + dir + ": " + err.Error())
			continue
		}
		return dir, nil
	}

	err := zerr.Wrap(domain.ErrNoUsableInstallRoot, "cannot choose an install root")
	err = zerr.With(err, "environment", envName)
	return "", zerr.With(err, "search_path", searchPath)
}

// probeWritable creates dir if needed and checks that a file can be created in it.
func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".conda-project-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// Package config loads and edits conda project documents and environment files.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ProjectRepository on top of YAML documents.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader backed by the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a new Loader backed by fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load reads the project rooted at dir.
func (l *Loader) Load(dir string) (*domain.Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "directory", dir)
	}

	docPath, err := l.findOne(root, domain.ProjectFileName, domain.ProjectFileNameAlt, domain.ErrAmbiguousProjectFile)
	if err != nil {
		return nil, err
	}

	var project *domain.Project
	if docPath != "" {
		project, err = l.loadDocument(root, docPath)
	} else {
		project, err = l.loadBareEnvironment(root)
	}
	if err != nil {
		return nil, err
	}

	if l.exists(filepath.Join(root, domain.CondarcFileName)) {
		project.Condarc = filepath.Join(root, domain.CondarcFileName)
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func (l *Loader) loadDocument(root, docPath string) (*domain.Project, error) {
	var doc ProjectDocument
	if err := l.readYAML(docPath, &doc, domain.ErrProjectReadFailed, domain.ErrProjectParseFailed); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:         doc.Name,
		Root:         root,
		DocumentPath: docPath,
		Variables:    variablesToDomain(doc.Variables),
	}
	if project.Name == "" {
		project.Name = filepath.Base(root)
	}

	for _, entry := range doc.Environments {
		sources := make([]string, 0, len(entry.Sources))
		for _, src := range entry.Sources {
			path := resolvePath(root, src)
			if !l.exists(path) {
				err := zerr.Wrap(domain.ErrSourceNotFound, "environment source file is missing")
				err = zerr.With(err, "environment", entry.Name)
				return nil, zerr.With(err, "path", src)
			}
			sources = append(sources, path)
		}
		project.Environments = append(project.Environments, &domain.Environment{Name: entry.Name, Sources: sources})
	}

	for _, entry := range doc.Commands {
		project.Commands = append(project.Commands, &domain.Command{
			Name:        entry.Name,
			Cmd:         entry.Cmd,
			Environment: entry.Environment,
			Variables:   variablesToDomain(entry.Variables),
		})
	}

	return project, nil
}

// loadBareEnvironment builds a single-environment project from environment.yml.
func (l *Loader) loadBareEnvironment(root string) (*domain.Project, error) {
	envPath, err := l.findOne(root, domain.EnvironmentFileName, domain.EnvironmentFileNameAlt,
		domain.ErrAmbiguousEnvironmentFile)
	if err != nil {
		return nil, err
	}
	if envPath == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "cannot load project"), "directory", root)
	}

	l.Logger.Debug("no project document found, using " + filepath.Base(envPath))

	return &domain.Project{
		Name: filepath.Base(root),
		Root: root,
		Environments: []*domain.Environment{
			{Name: domain.DefaultEnvironmentName, Sources: []string{envPath}},
		},
		Variables: map[string]*string{},
	}, nil
}

// LoadEnvironment parses the source files of env and layers them into an EnvironmentSpec.
func (l *Loader) LoadEnvironment(env *domain.Environment, currentPlatform string) (*domain.EnvironmentSpec, error) {
	sources := make([]domain.SourceFile, 0, len(env.Sources))
	for _, path := range env.Sources {
		src, err := l.parseSource(path)
		if err != nil {
			return nil, zerr.With(err, "environment", env.Name)
		}
		sources = append(sources, src)
	}

	spec := domain.NewEnvironmentSpec(env.Name, sources, currentPlatform)
	if spec.ChannelsDefaulted {
		l.Logger.Warn("no channels declared for environment " + env.Name + ", using " + domain.DefaultChannel)
	}
	if spec.PlatformsDefaulted {
		l.Logger.Debug("no platforms declared for environment " + env.Name + ", using " +
			strings.Join(spec.Platforms, ", "))
	}
	return spec, nil
}

func (l *Loader) parseSource(path string) (domain.SourceFile, error) {
	if !l.exists(path) {
		return domain.SourceFile{}, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "cannot read environment"), "path", path)
	}

	var file EnvironmentFile
	if err := l.readYAML(path, &file, domain.ErrSourceParseFailed, domain.ErrSourceParseFailed); err != nil {
		return domain.SourceFile{}, err
	}

	return domain.SourceFile{
		Path:         path,
		Name:         file.Name,
		Channels:     file.Channels,
		Dependencies: file.Dependencies.Conda,
		Pip:          file.Dependencies.Pip,
		Platforms:    file.Platforms,
		Variables:    file.Variables,
	}, nil
}

// LoadDotenv reads the .env file in root. A missing file yields an empty map.
func (l *Loader) LoadDotenv(root string) (map[string]string, error) {
	path := filepath.Join(root, domain.DotenvFileName)
	data, err := l.FS.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrDotenvParseFailed, err.Error()), "path", path)
	}

	vars, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrDotenvParseFailed, err.Error()), "path", path)
	}
	return vars, nil
}

// findOne returns the path of whichever of the two names exists in dir.
// Both existing is an error; neither existing yields an empty path.
func (l *Loader) findOne(dir, name, alt string, ambiguous error) (string, error) {
	primary := filepath.Join(dir, name)
	secondary := filepath.Join(dir, alt)

	hasPrimary := l.exists(primary)
	hasSecondary := l.exists(secondary)

	switch {
	case hasPrimary && hasSecondary:
		return "", zerr.With(zerr.Wrap(ambiguous, "remove one of the files"), "directory", dir)
	case hasPrimary:
		return primary, nil
	case hasSecondary:
		return secondary, nil
	default:
		return "", nil
	}
}

func (l *Loader) exists(path string) bool {
	info, err := l.FS.Stat(path)
	return err == nil && !info.IsDir()
}

// readYAML reads path and unmarshals it into target.
func (l *Loader) readYAML(path string, target any, readErr, parseErr error) error {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(readErr, err.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return zerr.With(err, "path", path)
		}
		return zerr.With(zerr.Wrap(parseErr, err.Error()), "path", path)
	}
	return nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func variablesToDomain(section VariablesSection) map[string]*string {
	vars := make(map[string]*string, len(section))
	for _, v := range section {
		vars[v.Name] = v.Default
	}
	return vars
}

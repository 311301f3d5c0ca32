package ports

import "go.trai.ch/conda-project/internal/core/domain"

// InitOptions describes a project created by ProjectRepository.Init.
type InitOptions struct {
	Name         string
	Dependencies []string
	Channels     []string
	Platforms    []string
	// Condarc holds key=value pairs written to the project .condarc.
	Condarc map[string]string
}

// DependencyEdit describes a change to the first source file of an environment.
type DependencyEdit struct {
	// Dependencies are package specs. A "@pip::" prefix targets the pip section.
	Dependencies []string
	// Channels are appended to the source file if not present (add only).
	Channels []string
}

// ProjectRepository loads and edits the declarative project documents.
//
//go:generate mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
type ProjectRepository interface {
	// Load reads the project rooted at dir.
	Load(dir string) (*domain.Project, error)

	// LoadEnvironment parses the source files of env and layers them into an EnvironmentSpec.
	LoadEnvironment(env *domain.Environment, currentPlatform string) (*domain.EnvironmentSpec, error)

	// LoadDotenv reads the .env file in the project root. A missing file yields an empty map.
	LoadDotenv(root string) (map[string]string, error)

	// Init creates a project in dir. It returns false if a project document already exists.
	Init(dir string, opts InitOptions) (bool, error)

	// AddDependencies adds dependencies and channels to the first source file of env.
	// It returns the warnings raised while editing.
	AddDependencies(env *domain.Environment, edit DependencyEdit) ([]string, error)

	// RemoveDependencies removes dependencies from the first source file of env.
	RemoveDependencies(env *domain.Environment, edit DependencyEdit) error
}

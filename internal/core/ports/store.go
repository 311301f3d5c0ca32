package ports

import "go.trai.ch/conda-project/internal/core/domain"

// LockStore persists lock artifacts.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockStore interface {
	// Load reads the lock artifact at path.
	// Returns nil, nil if the file does not exist.
	Load(path string) (*domain.LockArtifact, error)

	// Save replaces the lock artifact at path atomically.
	Save(path string, artifact *domain.LockArtifact) error
}

// MarkerStore persists the install marker of a prefix.
type MarkerStore interface {
	// ReadMarker returns the installation recorded in prefix.
	// Returns nil, nil if the prefix has no marker.
	ReadMarker(prefix string) (*domain.InstalledEnvironment, error)

	// WriteMarker records installed in its prefix atomically.
	WriteMarker(installed *domain.InstalledEnvironment) error

	// ReadSubdir returns the platform recorded in the prefix condarc, or an empty string.
	ReadSubdir(prefix string) (string, error)

	// WriteSubdir records platform in the prefix condarc.
	WriteSubdir(prefix, platform string) error
}

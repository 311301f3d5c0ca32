package ports

import "go.trai.ch/conda-project/internal/core/domain"

// Hasher computes lock fingerprints.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns the deterministic fingerprint of spec for platform.
	Fingerprint(spec *domain.EnvironmentSpec, platform string) (string, error)
}

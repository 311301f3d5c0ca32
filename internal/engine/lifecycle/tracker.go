// Package lifecycle locks environments and installs them from their lock artifacts.
package lifecycle

import (
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

// IsStale reports whether artifact must be regenerated for the given target
// platforms and their current fingerprints. A missing artifact, a missing
// platform or a fingerprint mismatch makes it stale.
func IsStale(platforms []string, fingerprints map[string]string, artifact *domain.LockArtifact) bool {
	if artifact == nil {
		return true
	}
	for _, platform := range platforms {
		if !artifact.HasPlatform(platform) {
			return true
		}
		recorded := artifact.Fingerprint(platform)
		if recorded == "" || recorded != fingerprints[platform] {
			return true
		}
	}
	return false
}

// fingerprints computes the fingerprint of spec for each of its target platforms.
func fingerprints(hasher ports.Hasher, spec *domain.EnvironmentSpec) (map[string]string, error) {
	fps := make(map[string]string, len(spec.Platforms))
	for _, platform := range spec.Platforms {
		fp, err := hasher.Fingerprint(spec, platform)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to fingerprint environment"), "platform", platform)
		}
		fps[platform] = fp
	}
	return fps, nil
}

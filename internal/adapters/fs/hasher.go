// Package fs implements lock fingerprints and install-root selection on the local filesystem.
package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// fingerprintVersion is mixed into every fingerprint so that a change of the
// canonical form invalidates existing lock files.
const fingerprintVersion = "conda-project/fingerprint/1"

// Hasher computes lock fingerprints with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes the canonical form of spec for platform. Source files are
// hashed in layering order; formatting and comments do not contribute.
func (h *Hasher) Fingerprint(spec *domain.EnvironmentSpec, platform string) (string, error) {
	if spec == nil {
		return "", zerr.With(zerr.New("cannot fingerprint an empty environment"), "platform", platform)
	}

	hasher := xxhash.New()
	writeField(hasher, fingerprintVersion)
	writeField(hasher, platform)
	writeList(hasher, spec.Channels)

	for i := range spec.Sources {
		src := &spec.Sources[i]
		writeList(hasher, src.Channels)
		writeList(hasher, src.Dependencies)
		writeList(hasher, src.Pip)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}

// writeList hashes values followed by a section separator.
func writeList(hasher *xxhash.Digest, values []string) {
	for _, v := range values {
		writeField(hasher, v)
	}
	_, _ = hasher.Write([]byte{0})
}

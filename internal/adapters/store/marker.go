package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.MarkerStore = (*MarkerStore)(nil)

// MarkerStore keeps the install marker and the subdir condarc inside a prefix.
type MarkerStore struct{}

// NewMarkerStore creates a new MarkerStore.
func NewMarkerStore() *MarkerStore {
	return &MarkerStore{}
}

type markerDocument struct {
	Environment string    `json:"environment"`
	Platform    string    `json:"platform"`
	Fingerprint string    `json:"fingerprint"`
	InstalledAt time.Time `json:"installed_at"`
}

// ReadMarker returns the installation recorded in prefix, or nil if there is none.
func (s *MarkerStore) ReadMarker(prefix string) (*domain.InstalledEnvironment, error) {
	path := domain.MarkerPath(prefix)
	//nolint:gosec // Path is derived from the resolved prefix
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrMarkerReadFailed, err.Error()), "path", path)
	}

	var doc markerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMarkerReadFailed, err.Error()), "path", path)
	}

	return &domain.InstalledEnvironment{
		Environment: doc.Environment,
		Prefix:      prefix,
		Platform:    doc.Platform,
		Fingerprint: doc.Fingerprint,
		InstalledAt: doc.InstalledAt,
	}, nil
}

// WriteMarker records installed in its prefix.
func (s *MarkerStore) WriteMarker(installed *domain.InstalledEnvironment) error {
	path := domain.MarkerPath(installed.Prefix)
	data, err := json.MarshalIndent(markerDocument{
		Environment: installed.Environment,
		Platform:    installed.Platform,
		Fingerprint: installed.Fingerprint,
		InstalledAt: installed.InstalledAt.UTC(),
	}, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMarkerWriteFailed, err.Error()), "path", path)
	}

	if err := writeFileAtomic(path, append(data, '\n')); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMarkerWriteFailed, err.Error()), "path", path)
	}
	return nil
}

type prefixCondarc struct {
	Subdir string `yaml:"subdir"`
}

// ReadSubdir returns the platform recorded in the prefix condarc, or an empty string.
func (s *MarkerStore) ReadSubdir(prefix string) (string, error) {
	path := domain.PrefixCondarcPath(prefix)
	//nolint:gosec // Path is derived from the resolved prefix
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(domain.ErrMarkerReadFailed, err.Error()), "path", path)
	}

	var rc prefixCondarc
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrMarkerReadFailed, err.Error()), "path", path)
	}
	return rc.Subdir, nil
}

// WriteSubdir records platform in the prefix condarc.
func (s *MarkerStore) WriteSubdir(prefix, platform string) error {
	path := domain.PrefixCondarcPath(prefix)
	data, err := yaml.Marshal(prefixCondarc{Subdir: platform})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMarkerWriteFailed, err.Error()), "path", path)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMarkerWriteFailed, err.Error()), "path", path)
	}
	return nil
}

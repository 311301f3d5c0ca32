package store

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.LockStore = (*LockStore)(nil)

// LockStore reads and writes lock artifacts in the conda-lock v1 layout.
type LockStore struct{}

// NewLockStore creates a new LockStore.
func NewLockStore() *LockStore {
	return &LockStore{}
}

type lockDocument struct {
	Version  int           `yaml:"version"`
	Metadata lockMetadata  `yaml:"metadata"`
	Package  []lockPackage `yaml:"package"`
}

type lockMetadata struct {
	ContentHash map[string]string `yaml:"content_hash"`
	Channels    []lockChannel     `yaml:"channels"`
	Platforms   []string          `yaml:"platforms"`
	Sources     []string          `yaml:"sources"`
}

type lockChannel struct {
	URL         string   `yaml:"url"`
	UsedEnvVars []string `yaml:"used_env_vars"`
}

type lockPackage struct {
	Name     string   `yaml:"name"`
	Version  string   `yaml:"version"`
	Manager  string   `yaml:"manager"`
	Platform string   `yaml:"platform"`
	URL      string   `yaml:"url"`
	Hash     lockHash `yaml:"hash"`
	Build    string   `yaml:"build,omitempty"`
	Channel  string   `yaml:"channel,omitempty"`
	Category string   `yaml:"category"`
	Optional bool     `yaml:"optional"`
}

type lockHash struct {
	MD5    string `yaml:"md5,omitempty"`
	SHA256 string `yaml:"sha256,omitempty"`
}

// Load reads the lock artifact at path. It returns nil, nil if the file does not exist.
func (s *LockStore) Load(path string) (*domain.LockArtifact, error) {
	//nolint:gosec // Path is built from the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrLockReadFailed, err.Error()), "path", path)
	}

	artifact, err := DecodeLock(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return artifact, nil
}

// Save replaces the lock artifact at path atomically.
func (s *LockStore) Save(path string, artifact *domain.LockArtifact) error {
	data, err := EncodeLock(artifact)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockWriteFailed, err.Error()), "path", filepath.Clean(path))
	}
	return nil
}

// DecodeLock parses a conda-lock v1 document.
func DecodeLock(data []byte) (*domain.LockArtifact, error) {
	var doc lockDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(domain.ErrLockParseFailed, err.Error())
	}
	if doc.Version != domain.LockVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockParseFailed, "unsupported lock file version"), "version", doc.Version)
	}

	artifact := &domain.LockArtifact{
		Version:     doc.Version,
		ContentHash: doc.Metadata.ContentHash,
		Platforms:   doc.Metadata.Platforms,
		Sources:     doc.Metadata.Sources,
		Packages:    make([]domain.LockedPackage, 0, len(doc.Package)),
	}
	for _, ch := range doc.Metadata.Channels {
		artifact.Channels = append(artifact.Channels, ch.URL)
	}
	for _, p := range doc.Package {
		artifact.Packages = append(artifact.Packages, domain.LockedPackage{
			Name:     p.Name,
			Version:  p.Version,
			Manager:  p.Manager,
			Platform: p.Platform,
			URL:      p.URL,
			Build:    p.Build,
			Channel:  p.Channel,
			Category: p.Category,
			Optional: p.Optional,
			MD5:      p.Hash.MD5,
			SHA256:   p.Hash.SHA256,
		})
	}
	return artifact, nil
}

// EncodeLock renders artifact as a conda-lock v1 document.
func EncodeLock(artifact *domain.LockArtifact) ([]byte, error) {
	doc := lockDocument{
		Version: domain.LockVersion,
		Metadata: lockMetadata{
			ContentHash: artifact.ContentHash,
			Platforms:   artifact.Platforms,
			Sources:     artifact.Sources,
		},
		Package: make([]lockPackage, 0, len(artifact.Packages)),
	}
	for _, ch := range artifact.Channels {
		doc.Metadata.Channels = append(doc.Metadata.Channels, lockChannel{URL: ch, UsedEnvVars: []string{}})
	}
	for i := range artifact.Packages {
		p := &artifact.Packages[i]
		category := p.Category
		if category == "" {
			category = "main"
		}
		doc.Package = append(doc.Package, lockPackage{
			Name:     p.Name,
			Version:  p.Version,
			Manager:  p.Manager,
			Platform: p.Platform,
			URL:      p.URL,
			Hash:     lockHash{MD5: p.MD5, SHA256: p.SHA256},
			Build:    p.Build,
			Channel:  p.Channel,
			Category: category,
			Optional: p.Optional,
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, zerr.Wrap(domain.ErrLockWriteFailed, err.Error())
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(domain.ErrLockWriteFailed, err.Error())
	}
	return buf.Bytes(), nil
}

package conda

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EnvironmentLocator = (*Client)(nil)

// Locate returns the prefix of an environment not managed by the project. A value
// containing a path separator is treated as a prefix, anything else as an environment
// name known to conda.
func (c *Client) Locate(ctx context.Context, nameOrPrefix string) (string, error) {
	if isPrefixReference(nameOrPrefix) {
		prefix, err := filepath.Abs(nameOrPrefix)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrExternalEnvironmentNotFound, err.Error()), "prefix", nameOrPrefix)
		}
		if !isCondaPrefix(prefix) {
			return "", zerr.With(zerr.Wrap(domain.ErrExternalEnvironmentNotFound, "directory is not a conda environment"),
				"prefix", prefix)
		}
		return prefix, nil
	}

	info, err := c.Info(ctx)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrExternalEnvironmentNotFound, err.Error()), "environment", nameOrPrefix)
	}

	if nameOrPrefix == "base" && info.RootPrefix != "" {
		return info.RootPrefix, nil
	}
	for _, env := range info.Envs {
		if filepath.Base(env) == nameOrPrefix && env != info.RootPrefix {
			return env, nil
		}
	}
	return "", zerr.With(zerr.Wrap(domain.ErrExternalEnvironmentNotFound, "conda does not know the environment"),
		"environment", nameOrPrefix)
}

func isPrefixReference(s string) bool {
	return filepath.IsAbs(s) || strings.ContainsAny(s, `/\`) || s == "." || s == ".."
}

func isCondaPrefix(prefix string) bool {
	info, err := os.Stat(filepath.Join(prefix, domain.MarkerDirName))
	return err == nil && info.IsDir()
}

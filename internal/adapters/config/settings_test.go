package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conda-project/internal/adapters/config"
)

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := config.LoadSettings(func(string) string { return "" })

		assert.Equal(t, "conda", s.CondaExe)
		assert.Equal(t, "conda-lock", s.CondaLockExe)
		assert.Equal(t, "envs", s.EnvsPath)
		assert.Empty(t, s.LogLevel)
		assert.Empty(t, s.Subdir)
	})

	t.Run("explicit values", func(t *testing.T) {
		env := map[string]string{
			"CONDA_EXE":               "/opt/conda/bin/conda",
			"CONDA_LOCK_EXE":          "/usr/local/bin/conda-lock",
			"CONDA_PROJECT_ENVS_PATH": "/shared/envs:envs",
			"CONDA_PROJECT_LOGLEVEL":  "debug",
			"CONDA_SUBDIR":            "osx-64",
		}
		s := config.LoadSettings(func(k string) string { return env[k] })

		assert.Equal(t, "/opt/conda/bin/conda", s.CondaExe)
		assert.Equal(t, "/usr/local/bin/conda-lock", s.CondaLockExe)
		assert.Equal(t, "/shared/envs:envs", s.EnvsPath)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, "osx-64", s.Subdir)
	})

	t.Run("conda-lock next to conda", func(t *testing.T) {
		bin := t.TempDir()
		conda := filepath.Join(bin, "conda")
		lock := filepath.Join(bin, "conda-lock")
		require.NoError(t, os.WriteFile(conda, nil, 0o700))
		require.NoError(t, os.WriteFile(lock, nil, 0o700))

		s := config.LoadSettings(func(k string) string {
			if k == "CONDA_EXE" {
				return conda
			}
			return ""
		})
		assert.Equal(t, lock, s.CondaLockExe)
	})

	t.Run("no sibling conda-lock", func(t *testing.T) {
		conda := filepath.Join(t.TempDir(), "conda")
		s := config.LoadSettings(func(k string) string {
			if k == "CONDA_EXE" {
				return conda
			}
			return ""
		})
		assert.Equal(t, "conda-lock", s.CondaLockExe)
	})
}

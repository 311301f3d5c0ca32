package config

import (
	"os"
	"path/filepath"
)

// Settings are the tool settings read from the process environment.
type Settings struct {
	// CondaExe is the conda executable (CONDA_EXE).
	CondaExe string
	// CondaLockExe is the conda-lock executable (CONDA_LOCK_EXE).
	CondaLockExe string
	// EnvsPath is the install-root search path (CONDA_PROJECT_ENVS_PATH).
	EnvsPath string
	// LogLevel is the raw CONDA_PROJECT_LOGLEVEL value.
	LogLevel string
	// Subdir overrides the detected platform (CONDA_SUBDIR).
	Subdir string
}

const (
	defaultCondaExe     = "conda"
	defaultCondaLockExe = "conda-lock"
	defaultEnvsPath     = "envs"
)

// LoadSettings reads the settings through getenv, applying defaults.
func LoadSettings(getenv func(string) string) Settings {
	s := Settings{
		CondaExe:     getenv("CONDA_EXE"),
		CondaLockExe: getenv("CONDA_LOCK_EXE"),
		EnvsPath:     getenv("CONDA_PROJECT_ENVS_PATH"),
		LogLevel:     getenv("CONDA_PROJECT_LOGLEVEL"),
		Subdir:       getenv("CONDA_SUBDIR"),
	}
	if s.CondaExe == "" {
		s.CondaExe = defaultCondaExe
	}
	if s.CondaLockExe == "" {
		// conda-lock usually sits next to conda.
		s.CondaLockExe = siblingExecutable(s.CondaExe, defaultCondaLockExe)
	}
	if s.EnvsPath == "" {
		s.EnvsPath = defaultEnvsPath
	}
	return s
}

// LoadSettingsFromEnv reads the settings from the process environment.
func LoadSettingsFromEnv() Settings {
	return LoadSettings(os.Getenv)
}

func siblingExecutable(condaExe, name string) string {
	if !filepath.IsAbs(condaExe) {
		return name
	}
	sibling := filepath.Join(filepath.Dir(condaExe), name+filepath.Ext(condaExe))
	if _, err := os.Stat(sibling); err != nil {
		return name
	}
	return sibling
}

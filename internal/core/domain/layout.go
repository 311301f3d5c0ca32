package domain

import (
	"fmt"
	"path/filepath"
)

const (
	// ProjectFileName is the preferred name of the project document.
	ProjectFileName = "conda-project.yml"

	// ProjectFileNameAlt is the alternative name of the project document.
	ProjectFileNameAlt = "conda-project.yaml"

	// EnvironmentFileName is the preferred name of a standalone environment file.
	EnvironmentFileName = "environment.yml"

	// EnvironmentFileNameAlt is the alternative name of a standalone environment file.
	EnvironmentFileNameAlt = "environment.yaml"

	// DefaultEnvironmentName is the environment name used for projects defined by a bare environment file.
	DefaultEnvironmentName = "default"

	// EnvsDirName is the default install root relative to the project directory.
	EnvsDirName = "envs"

	// CondarcFileName is the project-scoped configuration override passed to conda.
	CondarcFileName = ".condarc"

	// DotenvFileName is the name of the variable override file in the project directory.
	DotenvFileName = ".env"

	// PrefixCondarcFileName is the per-prefix configuration file recording a non-native subdir.
	PrefixCondarcFileName = "condarc"

	// MarkerDirName is the directory inside a prefix that holds the install marker.
	MarkerDirName = "conda-meta"

	// MarkerFileName is the name of the install marker.
	MarkerFileName = "conda-project-state.json"

	// GitignoreFileName is written into every installed prefix.
	GitignoreFileName = ".gitignore"

	// BackupSuffix is appended to a prefix while it is being replaced.
	BackupSuffix = ".previous"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// LockFileName returns the lock artifact file name for an environment.
func LockFileName(envName string) string {
	return fmt.Sprintf("conda-lock.%s.yml", envName)
}

// MarkerPath returns the path of the install marker inside prefix.
func MarkerPath(prefix string) string {
	return filepath.Join(prefix, MarkerDirName, MarkerFileName)
}

// PrefixCondarcPath returns the path of the subdir configuration file inside prefix.
func PrefixCondarcPath(prefix string) string {
	return filepath.Join(prefix, PrefixCondarcFileName)
}

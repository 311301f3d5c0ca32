package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// ExitPrepareFailed is the exit code used when a command could not be prepared
// (resolution, lock, install or variable failures) before any process was spawned.
const ExitPrepareFailed = 125

// Error categories. Every specific error below wraps exactly one of these so that
// callers can match either the specific sentinel or its category with errors.Is.
var (
	// ErrConfiguration covers malformed or missing project documents, unknown names and unusable search paths.
	ErrConfiguration = zerr.New("configuration error")

	// ErrLockFailed is returned when the external resolver could not lock one or more platforms.
	ErrLockFailed = zerr.New("lock failed")

	// ErrPlatformMismatch is returned when a lock artifact has no packages for the platform being installed.
	ErrPlatformMismatch = zerr.New("lock artifact does not cover the requested platform")

	// ErrInstallFailed is returned when the external installation engine failed.
	ErrInstallFailed = zerr.New("install failed")

	// ErrMissingVariables is returned when required variables are unresolved at run time.
	ErrMissingVariables = zerr.New("missing required variables")
)

var (
	// ErrProjectNotFound is returned when neither a project document nor an environment file exists.
	ErrProjectNotFound = zerr.Wrap(ErrConfiguration, "no conda-project.yml or environment.yml found")

	// ErrAmbiguousProjectFile is returned when both conda-project.yml and conda-project.yaml exist.
	ErrAmbiguousProjectFile = zerr.Wrap(ErrConfiguration, "both conda-project.yml and conda-project.yaml are present")

	// ErrAmbiguousEnvironmentFile is returned when both environment.yml and environment.yaml exist.
	ErrAmbiguousEnvironmentFile = zerr.Wrap(ErrConfiguration, "both environment.yml and environment.yaml are present")

	// ErrProjectReadFailed is returned when the project document cannot be read.
	ErrProjectReadFailed = zerr.Wrap(ErrConfiguration, "failed to read project document")

	// ErrProjectParseFailed is returned when the project document cannot be parsed.
	ErrProjectParseFailed = zerr.Wrap(ErrConfiguration, "failed to parse project document")

	// ErrProjectWriteFailed is returned when a project or environment document cannot be written.
	ErrProjectWriteFailed = zerr.Wrap(ErrConfiguration, "failed to write project document")

	// ErrNoEnvironments is returned when a project declares no environments.
	ErrNoEnvironments = zerr.Wrap(ErrConfiguration, "project declares no environments")

	// ErrEnvironmentNotFound is returned when an environment name is not declared by the project.
	ErrEnvironmentNotFound = zerr.Wrap(ErrConfiguration, "environment not found")

	// ErrDuplicateEnvironment is returned when two environments share a name.
	ErrDuplicateEnvironment = zerr.Wrap(ErrConfiguration, "duplicate environment")

	// ErrEmptyEnvironment is returned when an environment lists no source files.
	ErrEmptyEnvironment = zerr.Wrap(ErrConfiguration, "environment lists no source files")

	// ErrSourceNotFound is returned when an environment source file does not exist on disk.
	ErrSourceNotFound = zerr.Wrap(ErrConfiguration, "environment source file not found")

	// ErrSourceParseFailed is returned when an environment source file cannot be parsed.
	ErrSourceParseFailed = zerr.Wrap(ErrConfiguration, "failed to parse environment source file")

	// ErrInvalidDependency is returned when a dependency entry is neither a string nor a single pip mapping.
	ErrInvalidDependency = zerr.Wrap(ErrConfiguration, "dependencies may only contain strings and one pip mapping")

	// ErrCommandNotFound is returned when a command name is not declared by the project.
	ErrCommandNotFound = zerr.Wrap(ErrConfiguration, "command not found")

	// ErrNoCommands is returned when no command was requested and the project declares none.
	ErrNoCommands = zerr.Wrap(ErrConfiguration, "project declares no commands")

	// ErrDuplicateCommand is returned when two commands share a name.
	ErrDuplicateCommand = zerr.Wrap(ErrConfiguration, "duplicate command")

	// ErrEmptyCommand is returned when a command has an empty command line.
	ErrEmptyCommand = zerr.Wrap(ErrConfiguration, "command line is empty")

	// ErrNoUsableInstallRoot is returned when no entry of the install search path is writable.
	ErrNoUsableInstallRoot = zerr.Wrap(ErrConfiguration, "no writable install root in search path")

	// ErrExternalEnvironmentNotFound is returned when an external environment name or prefix cannot be located.
	ErrExternalEnvironmentNotFound = zerr.Wrap(ErrConfiguration, "external environment not found")

	// ErrInvalidLogLevel is returned when CONDA_PROJECT_LOGLEVEL holds an unknown level.
	ErrInvalidLogLevel = zerr.Wrap(ErrConfiguration, "invalid log level, expected debug, info, warn or error")

	// ErrUnknownPlatform is returned when a platform identifier is not recognised.
	ErrUnknownPlatform = zerr.Wrap(ErrConfiguration, "unknown platform")

	// ErrDotenvParseFailed is returned when the .env file cannot be parsed.
	ErrDotenvParseFailed = zerr.Wrap(ErrConfiguration, "failed to parse .env file")

	// ErrArchiveFetchFailed is returned when a project archive cannot be read or downloaded.
	ErrArchiveFetchFailed = zerr.Wrap(ErrConfiguration, "failed to fetch project archive")

	// ErrArchiveUnsupported is returned when a project archive has an unknown format.
	ErrArchiveUnsupported = zerr.Wrap(ErrConfiguration, "unsupported project archive format")

	// ErrArchiveExtractFailed is returned when a project archive cannot be extracted.
	ErrArchiveExtractFailed = zerr.Wrap(ErrConfiguration, "failed to extract project archive")

	// ErrArchivePathEscape is returned when an archive member would be written outside the target directory.
	ErrArchivePathEscape = zerr.Wrap(ErrConfiguration, "archive member escapes the target directory")
)

var (
	// ErrSolveFailed is returned when the external resolver fails for a platform.
	ErrSolveFailed = zerr.Wrap(ErrLockFailed, "dependency resolution failed")

	// ErrLockReadFailed is returned when an existing lock artifact cannot be read.
	ErrLockReadFailed = zerr.Wrap(ErrLockFailed, "failed to read lock file")

	// ErrLockParseFailed is returned when an existing lock artifact cannot be parsed.
	ErrLockParseFailed = zerr.Wrap(ErrLockFailed, "failed to parse lock file")

	// ErrLockWriteFailed is returned when a lock artifact cannot be written.
	ErrLockWriteFailed = zerr.Wrap(ErrLockFailed, "failed to write lock file")
)

var (
	// ErrInstallTransactionFailed is returned when the external installer fails to materialize a prefix.
	ErrInstallTransactionFailed = zerr.Wrap(ErrInstallFailed, "install transaction failed")

	// ErrMarkerReadFailed is returned when an install marker cannot be read.
	ErrMarkerReadFailed = zerr.Wrap(ErrInstallFailed, "failed to read install marker")

	// ErrMarkerWriteFailed is returned when an install marker cannot be written.
	ErrMarkerWriteFailed = zerr.Wrap(ErrInstallFailed, "failed to write install marker")

	// ErrPrefixPrepareFailed is returned when the install prefix cannot be prepared or restored.
	ErrPrefixPrepareFailed = zerr.Wrap(ErrInstallFailed, "failed to prepare install prefix")

	// ErrRemoveFailed is returned when an installed prefix cannot be removed.
	ErrRemoveFailed = zerr.Wrap(ErrInstallFailed, "failed to remove environment")
)

var (
	// ErrSpawnFailed is returned when a child process cannot be started.
	ErrSpawnFailed = zerr.New("failed to start process")

	// ErrShellNotFound is returned when no interactive shell can be determined for activation.
	ErrShellNotFound = zerr.New("no interactive shell found")
)

// MissingVariablesError lists every variable that has no value after all scopes were merged.
type MissingVariablesError struct {
	Names []string
}

// Error implements the error interface.
func (e *MissingVariablesError) Error() string {
	return "the following variables are required but have no value: " + strings.Join(e.Names, ", ")
}

// Unwrap returns the category sentinel.
func (e *MissingVariablesError) Unwrap() error {
	return ErrMissingVariables
}

// ExitStatusError reports a non-zero exit of a child process.
// It is not a failure of the tool itself; main exits with Code and prints nothing.
type ExitStatusError struct {
	Code   int
	Signal string
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("process terminated by signal %s (status %d)", e.Signal, e.Code)
	}
	return fmt.Sprintf("process exited with status %d", e.Code)
}

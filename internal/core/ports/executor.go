// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// ProcessSpec describes a child process.
type ProcessSpec struct {
	// Command is the command line, interpreted by the platform shell.
	Command string
	// Args are appended to Command as separate arguments.
	Args []string
	// Dir is the working directory.
	Dir string
	// Env is the full environment in "KEY=VALUE" format.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs child processes.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs spec to completion. A non-zero exit is returned as *domain.ExitStatusError.
	Execute(ctx context.Context, spec ProcessSpec) error

	// Interactive starts an interactive shell with spec.Env and waits for it to exit.
	// spec.Command selects the shell; an empty value uses the user's default shell.
	Interactive(ctx context.Context, spec ProcessSpec) error
}

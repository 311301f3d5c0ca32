// Package shell runs project commands and activation shells as child processes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// interruptGrace is how long a child may take to exit after an interrupt
// before it is killed.
const interruptGrace = 10 * time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs spec through the platform shell and waits for it to finish.
func (e *Executor) Execute(ctx context.Context, spec ports.ProcessSpec) error {
	name, args := shellCommand(runtime.GOOS, spec.Command, spec.Args)

	// A child sharing our terminal already receives the keyboard interrupt, so it
	// stays in our process group. Detached children get their own group and the
	// interrupt is forwarded to the whole group on cancellation.
	ownGroup := !isTerminal(spec.Stdin)

	//nolint:gosec // running user commands is the purpose of this executor
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	cmd.SysProcAttr = processAttributes(ownGroup)
	cmd.Cancel = func() error { return interrupt(cmd.Process, ownGroup) }
	cmd.WaitDelay = interruptGrace

	e.logger.Debug("running " + name + " " + strings.Join(args, " "))

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSpawnFailed, err.Error()), "command", spec.Command)
	}

	return exitStatus(cmd.Wait(), cmd.ProcessState)
}

// shellCommand returns the program and arguments that run command with args
// appended. On unix the arguments are passed positionally so they are never
// re-parsed by the shell.
func shellCommand(goos, command string, args []string) (string, []string) {
	if goos == "windows" {
		line := command
		for _, arg := range args {
			line += " " + quoteWindows(arg)
		}
		return "cmd", []string{"/C", line}
	}

	argv := []string{"-c", command + ` "$@"`, "conda-project"}
	return "sh", append(argv, args...)
}

func quoteWindows(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"&|<>^") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}

// exitStatus maps the result of Wait to nil or *domain.ExitStatusError.
// The process state takes precedence over err: a child that exits cleanly after
// cancellation is reported by its own status, not by the context error.
func exitStatus(err error, state *os.ProcessState) error {
	if state == nil {
		if err == nil {
			return nil
		}
		return zerr.Wrap(domain.ErrSpawnFailed, err.Error())
	}

	code, signal := decodeState(state)
	if code == 0 {
		var waitErr *exec.ExitError
		if err != nil && !errors.As(err, &waitErr) && !errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, exec.ErrWaitDelay) {
			return zerr.Wrap(err, "failed to wait for process")
		}
		return nil
	}
	return &domain.ExitStatusError{Code: code, Signal: signal}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

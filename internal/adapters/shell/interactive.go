package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Interactive starts a shell with spec.Env and waits for it to exit.
// When stdin is a terminal the shell runs on a pseudo-terminal that follows
// the size of ours.
func (e *Executor) Interactive(ctx context.Context, spec ports.ProcessSpec) error {
	shell := spec.Command
	if shell == "" {
		shell = defaultShell(runtime.GOOS, spec.Env)
	}
	if shell == "" {
		return zerr.Wrap(domain.ErrShellNotFound, "set SHELL to choose one")
	}

	path, err := exec.LookPath(shell)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrShellNotFound, err.Error()), "shell", shell)
	}

	//nolint:gosec // the shell is chosen by the user
	cmd := exec.CommandContext(ctx, path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.WaitDelay = interruptGrace

	e.logger.Debug("starting interactive shell " + path)

	if stdin, ok := spec.Stdin.(*os.File); ok && runtime.GOOS != "windows" && isTerminal(stdin) {
		return runOnPTY(cmd, stdin, spec.Stdout)
	}

	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSpawnFailed, err.Error()), "shell", path)
	}
	return exitStatus(cmd.Wait(), cmd.ProcessState)
}

// ptyDrainTimeout bounds how long output is still copied after the shell exited.
var ptyDrainTimeout = 500 * time.Millisecond

func runOnPTY(cmd *exec.Cmd, stdin *os.File, stdout io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSpawnFailed, err.Error()), "shell", cmd.Path)
	}

	stopResize := watchResize(func() { _ = pty.InheritSize(stdin, ptmx) })
	defer stopResize()

	fd := int(stdin.Fd()) //nolint:gosec // fd fits in int
	if state, err := term.MakeRaw(fd); err == nil {
		defer func() { _ = term.Restore(fd, state) }()
	}

	// The stdin copy blocks on a read we cannot interrupt; it ends with the process.
	go func() { _, _ = io.Copy(ptmx, stdin) }()

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(stdout, ptmx)
	}()

	waitErr := cmd.Wait()
	// Background jobs of the shell may keep the terminal open after it exits.
	select {
	case <-ioDone:
	case <-time.After(ptyDrainTimeout):
	}
	_ = ptmx.Close()

	return exitStatus(waitErr, cmd.ProcessState)
}

// defaultShell returns the user's shell from env, falling back to the process
// environment and then to the platform default.
func defaultShell(goos string, env []string) string {
	key := "SHELL"
	if goos == "windows" {
		key = "COMSPEC"
	}

	if v := lookupEnv(env, key); v != "" {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}

	if goos == "windows" {
		return "cmd.exe"
	}
	if _, err := os.Stat("/bin/sh"); err == nil {
		return "/bin/sh"
	}
	return ""
}

func lookupEnv(env []string, key string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if k, v, ok := strings.Cut(env[i], "="); ok && strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

//go:build !windows

package shell

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
)

func processAttributes(ownGroup bool) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: ownGroup}
}

// interrupt sends SIGINT to the child's process group. A child sharing our
// group was signalled by the terminal already and is left alone.
func interrupt(p *os.Process, ownGroup bool) error {
	if p == nil || !ownGroup {
		return nil
	}
	err := syscall.Kill(-p.Pid, syscall.SIGINT)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}

// decodeState returns the shell-style exit code of state. Termination by a
// signal is reported as 128 plus the signal number.
func decodeState(state *os.ProcessState) (int, string) {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), ws.Signal().String()
	}
	return state.ExitCode(), ""
}

// watchResize calls fn whenever the controlling terminal changes size, until stop is called.
func watchResize(fn func()) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				fn()
			case <-done:
				return
			}
		}
	}()
	ch <- syscall.SIGWINCH
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

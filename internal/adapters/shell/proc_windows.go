//go:build windows

package shell

import (
	"os"
	"syscall"
)

func processAttributes(bool) *syscall.SysProcAttr {
	return nil
}

// interrupt kills the child. Windows has no SIGINT for arbitrary processes.
func interrupt(p *os.Process, _ bool) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}

func decodeState(state *os.ProcessState) (int, string) {
	return state.ExitCode(), ""
}

func watchResize(fn func()) (stop func()) {
	fn()
	return func() {}
}

package conda_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"go.trai.ch/conda-project/internal/adapters/conda"
)

// fakeTool returns a CommandFunc that re-executes the test binary as the given
// scenario of TestHelperProcess. Every invocation is appended to the returned log file.
func fakeTool(t *testing.T, scenario string) (conda.CommandFunc, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "calls.log")
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // Test helper calls
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_SCENARIO="+scenario,
			"HELPER_LOG="+logPath,
		)
		return cmd
	}, logPath
}

func readCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read calls: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

const helperLock = `version: 1
metadata:
  content_hash:
    %[1]s: solver-hash
  channels:
  - url: conda-forge
    used_env_vars: []
  platforms:
  - %[1]s
  sources:
  - environment.yml
package:
- name: python
  version: 3.11.5
  manager: conda
  platform: %[1]s
  url: https://conda.anaconda.org/conda-forge/%[1]s/python-3.11.5-0.conda
  hash:
    md5: 11aa
  category: main
  optional: false
`

const helperInfo = `{
  "platform": "osx-arm64",
  "root_prefix": "/opt/conda",
  "envs": ["/opt/conda", "/opt/conda/envs/tools", "/home/u/.conda/envs/data"],
  "envs_dirs": ["/opt/conda/envs"]
}`

// TestHelperProcess is the fake conda and conda-lock executable.
func TestHelperProcess(_ *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "No command provided\n")
		os.Exit(2)
	}

	if logPath := os.Getenv("HELPER_LOG"); logPath != "" {
		//nolint:gosec // Test helper log
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err == nil {
			line := strings.Join(args, " ")
			if rc := os.Getenv("CONDARC"); rc != "" {
				line += " CONDARC=" + rc
			}
			if subdir := os.Getenv("CONDA_SUBDIR"); subdir != "" {
				line += " CONDA_SUBDIR=" + subdir
			}
			_, _ = fmt.Fprintln(f, line)
			_ = f.Close()
		}
	}

	scenario := os.Getenv("HELPER_SCENARIO")
	if scenario == "fail" {
		fmt.Fprintf(os.Stderr, "PackagesNotFoundError: nonexistent\n")
		os.Exit(1)
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == "conda-lock" && len(rest) > 0 && rest[0] == "lock":
		if scenario == "no-output" {
			os.Exit(0)
		}
		var lockfile, platform string
		for i := 0; i+1 < len(rest); i++ {
			switch rest[i] {
			case "--lockfile":
				lockfile = rest[i+1]
			case "--platform":
				platform = rest[i+1]
			}
		}
		if scenario == "wrong-platform" {
			platform = "win-64"
		}
		//nolint:gosec // Test helper output
		if err := os.WriteFile(lockfile, []byte(fmt.Sprintf(helperLock, platform)), 0o600); err != nil {
			os.Exit(3)
		}
	case cmd == "conda" && len(rest) > 0 && rest[0] == "info":
		_, _ = fmt.Fprint(os.Stdout, helperInfo)
	case cmd == "conda" && len(rest) > 0 && rest[0] == "create":
		for i := 0; i+1 < len(rest); i++ {
			if rest[i] == "--prefix" {
				_ = os.MkdirAll(filepath.Join(rest[i+1], "conda-meta"), 0o750)
			}
		}
	}
	os.Exit(0)
}

// Package conda drives the conda and conda-lock command line tools.
package conda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// CommandFunc builds the command for an external tool invocation.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Client runs conda for platform detection, installs and environment lookup.
type Client struct {
	condaExe string
	subdir   string
	logger   ports.Logger
	command  CommandFunc

	infoGroup singleflight.Group
	mu        sync.Mutex
	info      *Info
}

// NewClient creates a Client that runs condaExe. A non-empty subdir overrides
// the detected platform.
func NewClient(logger ports.Logger, condaExe, subdir string) *Client {
	return &Client{
		condaExe: condaExe,
		subdir:   subdir,
		logger:   logger,
		command:  exec.CommandContext,
	}
}

// Info is the subset of `conda info --json` used by the client.
type Info struct {
	Platform   string   `json:"platform"`
	RootPrefix string   `json:"root_prefix"`
	Envs       []string `json:"envs"`
	EnvsDirs   []string `json:"envs_dirs"`
}

// Info returns the output of `conda info --json`. Concurrent callers share one invocation
// and the result is cached for the lifetime of the client.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	c.mu.Lock()
	cached := c.info
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	result, err, _ := c.infoGroup.Do("info", func() (any, error) {
		c.mu.Lock()
		cached := c.info
		c.mu.Unlock()
		if cached != nil {
			return cached, nil
		}

		out, err := c.run(ctx, nil, c.condaExe, "info", "--json")
		if err != nil {
			return nil, err
		}
		var info Info
		if err := json.Unmarshal(out, &info); err != nil {
			return nil, zerr.Wrap(err, "failed to parse conda info output")
		}

		c.mu.Lock()
		c.info = &info
		c.mu.Unlock()
		return &info, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Info), nil
}

// run executes name with args and returns its standard output. extraEnv is appended
// to the inherited environment. A failed command is reported with its stderr.
func (c *Client) run(ctx context.Context, extraEnv []string, name string, args ...string) ([]byte, error) {
	return runTool(ctx, c.logger, c.command, extraEnv, name, args...)
}

func runTool(
	ctx context.Context,
	logger ports.Logger,
	command CommandFunc,
	extraEnv []string,
	name string,
	args ...string,
) ([]byte, error) {
	cmd := command(ctx, name, args...)
	cmd.Env = append(cmd.Environ(), extraEnv...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("running " + name + " " + strings.Join(args, " "))
	out, err := cmd.Output()
	if err != nil {
		msg := "external tool failed"
		if tail := lastLine(stderr.String()); tail != "" {
			msg = tail
		}
		toolErr := zerr.With(zerr.Wrap(err, msg), "command", name+" "+firstArg(args))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr = zerr.With(toolErr, "exit_code", exitErr.ExitCode())
		}
		return out, toolErr
	}
	return out, nil
}

// lastLine returns the last non-empty line of s, which is where conda prints its error.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

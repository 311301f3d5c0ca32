// Package main is the entry point for conda-project.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/cmd/conda-project/commands"
	"go.trai.ch/conda-project/internal/app"
	"go.trai.ch/conda-project/internal/core/domain"
	_ "go.trai.ch/conda-project/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()
	defer func() {
		_ = components.App.Shutdown(context.WithoutCancel(ctx))
	}()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	return exitCode(cli.Execute(ctx), components)
}

// exitCode maps the result of a command to the process exit status. A child's
// exit status is passed through without a message.
func exitCode(err error, components *app.Components) int {
	if err == nil {
		return 0
	}

	var exit *domain.ExitStatusError
	if errors.As(err, &exit) {
		return exit.Code
	}

	var prepare *commands.PrepareError
	if errors.As(err, &prepare) {
		components.Logger.Error(prepare.Err)
		return domain.ExitPrepareFailed
	}

	components.Logger.Error(err)
	return 1
}

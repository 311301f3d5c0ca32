// Package runner executes project commands inside their environments.
package runner

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/engine/lifecycle"
	"go.trai.ch/zerr"
)

// Request selects what to run and where.
type Request struct {
	// Command is a declared command name or an ad hoc command line. Empty selects
	// the default command.
	Command string
	// Args are appended to the command line.
	Args []string
	// Environment overrides the environment of the command.
	Environment string
	// External names an environment not managed by the project, by name or prefix.
	// When set the project environments are neither locked nor installed.
	External string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Prepared is a command that is ready to be spawned.
type Prepared struct {
	Command     *domain.Command
	Environment string
	Prefix      string
	Process     ports.ProcessSpec
}

// Runner resolves commands, prepares their environments and spawns them.
type Runner struct {
	repo      ports.ProjectRepository
	installer *lifecycle.Installer
	locator   ports.EnvironmentLocator
	executor  ports.Executor
	tracer    ports.Tracer
	logger    ports.Logger
	environ   func() []string
	goos      string
}

// NewRunner creates a new Runner.
func NewRunner(
	repo ports.ProjectRepository,
	installer *lifecycle.Installer,
	locator ports.EnvironmentLocator,
	executor ports.Executor,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		repo:      repo,
		installer: installer,
		locator:   locator,
		executor:  executor,
		tracer:    tracer,
		logger:    logger,
		environ:   os.Environ,
		goos:      runtime.GOOS,
	}
}

// Run prepares and runs a command. A non-zero exit of the command is returned
// as *domain.ExitStatusError; every other error means nothing was run.
func (r *Runner) Run(ctx context.Context, project *domain.Project, req Request) error {
	prepared, err := r.Prepare(ctx, project, req)
	if err != nil {
		return err
	}

	ctx, span := r.tracer.Start(ctx, "run "+label(prepared.Command))
	defer span.End()
	span.SetAttribute("environment", prepared.Environment)
	span.SetAttribute("prefix", prepared.Prefix)

	r.logger.Debug("running " + prepared.Process.Command + " in " + prepared.Environment)
	if err := r.executor.Execute(ctx, prepared.Process); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Prepare resolves the command and its environment, installs the environment
// if needed and builds the process description. Nothing is spawned.
func (r *Runner) Prepare(ctx context.Context, project *domain.Project, req Request) (*Prepared, error) {
	cmd, err := resolveCommand(project, req.Command)
	if err != nil {
		return nil, err
	}

	envName := req.Environment
	if envName == "" {
		envName = cmd.Environment
	}

	target, err := r.target(ctx, project, envName, req.External)
	if err != nil {
		return nil, err
	}

	env, err := r.processEnv(project, cmd, target)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		Command:     cmd,
		Environment: target.name,
		Prefix:      target.prefix,
		Process: ports.ProcessSpec{
			Command: cmd.Cmd,
			Args:    req.Args,
			Dir:     project.Root,
			Env:     env,
			Stdin:   req.Stdin,
			Stdout:  req.Stdout,
			Stderr:  req.Stderr,
		},
	}, nil
}

// ActivateRequest selects the environment of an interactive shell.
type ActivateRequest struct {
	Environment string
	External    string
	// Shell overrides the user's default shell.
	Shell string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Activate starts an interactive shell inside an environment and waits for it.
func (r *Runner) Activate(ctx context.Context, project *domain.Project, req ActivateRequest) error {
	target, err := r.target(ctx, project, req.Environment, req.External)
	if err != nil {
		return err
	}

	env, err := r.processEnv(project, &domain.Command{}, target)
	if err != nil {
		return err
	}
	env = setEnv(env, "CONDA_PROMPT_MODIFIER", "("+target.name+") ", r.goos == windows)

	r.logger.Info("activating environment " + target.name)
	return r.executor.Interactive(ctx, ports.ProcessSpec{
		Command: req.Shell,
		Dir:     project.Root,
		Env:     env,
		Stdin:   req.Stdin,
		Stdout:  req.Stdout,
		Stderr:  req.Stderr,
	})
}

// resolveCommand maps the requested name to a declared command. A name that is
// not declared is run as an ad hoc command line.
func resolveCommand(project *domain.Project, name string) (*domain.Command, error) {
	if name == "" {
		return project.DefaultCommand()
	}
	if project.HasCommand(name) {
		return project.Command(name)
	}
	if strings.TrimSpace(name) == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrEmptyCommand, "nothing to run"), "command", name)
	}
	return &domain.Command{Cmd: name}, nil
}

type target struct {
	name   string
	prefix string
	// spec is nil for external environments.
	spec *domain.EnvironmentSpec
}

func (r *Runner) target(ctx context.Context, project *domain.Project, envName, external string) (*target, error) {
	if external != "" {
		prefix, err := r.locator.Locate(ctx, external)
		if err != nil {
			return nil, err
		}
		return &target{name: external, prefix: prefix}, nil
	}

	env, err := project.Environment(envName)
	if err != nil {
		return nil, err
	}

	result, err := r.installer.Install(ctx, project, env, lifecycle.InstallOptions{})
	if err != nil {
		return nil, err
	}
	return &target{name: env.Name, prefix: result.Installed.Prefix, spec: result.Spec}, nil
}

func label(cmd *domain.Command) string {
	if cmd.Name != "" {
		return cmd.Name
	}
	return cmd.Cmd
}

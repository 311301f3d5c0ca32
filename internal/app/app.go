// Package app implements the application layer for conda-project.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/conda-project/internal/adapters/detector"
	"go.trai.ch/conda-project/internal/adapters/logger"
	"go.trai.ch/conda-project/internal/adapters/telemetry"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/engine/lifecycle"
	"go.trai.ch/conda-project/internal/engine/runner"
	"go.trai.ch/conda-project/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	repo      ports.ProjectRepository
	installer *lifecycle.Installer
	runner    *runner.Runner
	archive   ports.ArchiveFetcher
	platforms ports.PlatformDetector
	logger    ports.Logger
	bridge    sdktrace.SpanProcessor
	logLevel  string

	options  Options
	color    detector.ColorMode
	provider *sdktrace.TracerProvider
	project  *domain.Project
}

// New creates a new App instance. logLevel is the raw level from the environment.
func New(
	repo ports.ProjectRepository,
	installer *lifecycle.Installer,
	run *runner.Runner,
	archive ports.ArchiveFetcher,
	platforms ports.PlatformDetector,
	log ports.Logger,
	bridge sdktrace.SpanProcessor,
	logLevel string,
) *App {
	return &App{
		repo:      repo,
		installer: installer,
		runner:    run,
		archive:   archive,
		platforms: platforms,
		logger:    log,
		bridge:    bridge,
		logLevel:  logLevel,
		options:   Options{Directory: "."},
		color:     detector.ColorAuto,
	}
}

// Options are the global settings of one invocation.
type Options struct {
	// Directory is the project directory. With an archive it is the extraction
	// target; empty extracts into a temporary directory.
	Directory string
	Verbose   bool
	JSONLogs  bool
	// Color is "auto", "always" or "never".
	Color string
	// Archive is a project archive to bootstrap from: a directory, a tar or zip
	// file, or an http(s) URL of one.
	Archive        string
	ArchiveOptions map[string]string
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetLevel(level slog.Level)
}

// Configure applies the global options. It must be called before any other method.
func (a *App) Configure(opts Options) error {
	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetLevel(level)
		l.SetJSON(opts.JSONLogs)
	}

	a.color = detector.ResolveMode(detector.DetectEnvironment(), opts.Color)
	if opts.Directory == "" && opts.Archive == "" {
		opts.Directory = "."
	}
	a.options = opts
	a.project = nil

	if a.provider == nil && a.bridge != nil {
		a.provider = setupOTel(a.bridge)
	}
	return nil
}

// Shutdown flushes telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	if a.provider == nil {
		return nil
	}
	return a.provider.Shutdown(ctx)
}

// Printer returns a Printer for command results honoring the color setting.
func (a *App) Printer(w io.Writer) *output.Printer {
	return output.NewPrinter(w, termenv.WithProfile(a.color.Profile()))
}

// Project loads the project, fetching the project archive first if one is configured.
func (a *App) Project(ctx context.Context) (*domain.Project, error) {
	if a.project != nil {
		return a.project, nil
	}

	dir := a.options.Directory
	if a.options.Archive != "" {
		fetched, err := a.archive.Fetch(ctx, a.options.Archive, a.options.Directory, a.options.ArchiveOptions)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("project archive " + a.options.Archive + " extracted to " + fetched)
		dir = fetched
	}

	project, err := a.repo.Load(dir)
	if err != nil {
		return nil, err
	}
	a.project = project
	return project, nil
}

// InitOptions describe a new project.
type InitOptions struct {
	ports.InitOptions
	// Lock locks the default environment after creating the project.
	Lock bool
	// Install installs the default environment after creating the project.
	Install bool
}

// Init creates a project in the project directory. An existing project is left alone.
func (a *App) Init(ctx context.Context, opts InitOptions) error {
	dir := a.options.Directory
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, err.Error()), "directory", dir)
	}

	if len(opts.Platforms) == 0 {
		current, err := a.platforms.Current(ctx)
		if err != nil {
			return err
		}
		opts.Platforms = domain.DefaultPlatformsFor(current)
	}

	created, err := a.repo.Init(dir, opts.InitOptions)
	if err != nil {
		return err
	}
	if !created || (!opts.Lock && !opts.Install) {
		return nil
	}

	a.project = nil
	project, err := a.Project(ctx)
	if err != nil {
		return err
	}
	env, err := project.DefaultEnvironment()
	if err != nil {
		return err
	}

	if opts.Install {
		_, err = a.installer.Install(ctx, project, env, lifecycle.InstallOptions{})
		return err
	}
	_, err = a.installer.Locker().Lock(ctx, project, env, false)
	return err
}

// Lock locks the named environment, or every environment when name is empty.
func (a *App) Lock(ctx context.Context, name string, force bool) error {
	project, err := a.Project(ctx)
	if err != nil {
		return err
	}

	envs, err := selectEnvironments(project, name, name == "")
	if err != nil {
		return err
	}
	for _, env := range envs {
		if _, err := a.installer.Locker().Lock(ctx, project, env, force); err != nil {
			return err
		}
	}
	return nil
}

// LockCheck is the lock status of one environment.
type LockCheck struct {
	Environment string
	Locked      bool
	Stale       bool
}

// Check reports the lock status of every environment without solving.
func (a *App) Check(ctx context.Context) ([]LockCheck, error) {
	project, err := a.Project(ctx)
	if err != nil {
		return nil, err
	}

	checks := make([]LockCheck, 0, len(project.Environments))
	for _, env := range project.Environments {
		state, err := a.installer.Locker().State(ctx, project, env)
		if err != nil {
			return nil, err
		}
		checks = append(checks, LockCheck{
			Environment: env.Name,
			Locked:      state.Artifact != nil,
			Stale:       state.Stale,
		})
	}
	return checks, nil
}

// InstallOptions select the environments to install and how.
type InstallOptions struct {
	Environment string
	All         bool
	// ForCommand installs the environment of the named command.
	ForCommand string
	AsPlatform string
	Force      bool
}

// Install installs the selected environments.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	project, envs, err := a.installTargets(ctx, opts)
	if err != nil {
		return err
	}
	for _, env := range envs {
		_, err := a.installer.Install(ctx, project, env, lifecycle.InstallOptions{
			Force:      opts.Force,
			AsPlatform: opts.AsPlatform,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// EnvironmentStatus is the install status of one environment.
type EnvironmentStatus struct {
	Environment string
	lifecycle.InstallStatus
}

// InstallStatus reports whether the selected environments are installed and current.
func (a *App) InstallStatus(ctx context.Context, opts InstallOptions) ([]EnvironmentStatus, error) {
	project, envs, err := a.installTargets(ctx, opts)
	if err != nil {
		return nil, err
	}

	statuses := make([]EnvironmentStatus, 0, len(envs))
	for _, env := range envs {
		status, err := a.installer.Status(ctx, project, env)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, EnvironmentStatus{Environment: env.Name, InstallStatus: *status})
	}
	return statuses, nil
}

func (a *App) installTargets(ctx context.Context, opts InstallOptions) (*domain.Project, []*domain.Environment, error) {
	project, err := a.Project(ctx)
	if err != nil {
		return nil, nil, err
	}

	name := opts.Environment
	if opts.ForCommand != "" {
		cmd, err := project.Command(opts.ForCommand)
		if err != nil {
			return nil, nil, err
		}
		name = cmd.Environment
	}

	envs, err := selectEnvironments(project, name, opts.All)
	if err != nil {
		return nil, nil, err
	}
	return project, envs, nil
}

// Clean removes the installed prefix of the named environment, or of every
// environment when all is set.
func (a *App) Clean(ctx context.Context, name string, all bool) error {
	project, err := a.Project(ctx)
	if err != nil {
		return err
	}

	envs, err := selectEnvironments(project, name, all)
	if err != nil {
		return err
	}
	for _, env := range envs {
		if err := a.installer.Clean(ctx, project, env); err != nil {
			return err
		}
	}
	return nil
}

// Run runs a command. A non-zero exit of the command is returned as *domain.ExitStatusError.
func (a *App) Run(ctx context.Context, req runner.Request) error {
	project, err := a.Project(ctx)
	if err != nil {
		return err
	}
	return a.runner.Run(ctx, project, req)
}

// Activate starts an interactive shell inside an environment.
func (a *App) Activate(ctx context.Context, req runner.ActivateRequest) error {
	project, err := a.Project(ctx)
	if err != nil {
		return err
	}
	return a.runner.Activate(ctx, project, req)
}

// Add adds dependencies to an environment and relocks it when its declaration changed.
func (a *App) Add(ctx context.Context, name string, edit ports.DependencyEdit) error {
	project, env, err := a.environment(ctx, name)
	if err != nil {
		return err
	}

	warnings, err := a.repo.AddDependencies(env, edit)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		a.logger.Warn(w)
	}

	_, err = a.installer.Locker().Lock(ctx, project, env, false)
	return err
}

// Remove removes dependencies from an environment and relocks it when its declaration changed.
func (a *App) Remove(ctx context.Context, name string, edit ports.DependencyEdit) error {
	project, env, err := a.environment(ctx, name)
	if err != nil {
		return err
	}

	if err := a.repo.RemoveDependencies(env, edit); err != nil {
		return err
	}

	_, err = a.installer.Locker().Lock(ctx, project, env, false)
	return err
}

func (a *App) environment(ctx context.Context, name string) (*domain.Project, *domain.Environment, error) {
	project, err := a.Project(ctx)
	if err != nil {
		return nil, nil, err
	}
	env, err := project.Environment(name)
	if err != nil {
		return nil, nil, err
	}
	return project, env, nil
}

// selectEnvironments returns every environment when all is set, otherwise the
// named one or the default.
func selectEnvironments(project *domain.Project, name string, all bool) ([]*domain.Environment, error) {
	if all {
		if len(project.Environments) == 0 {
			return nil, domain.ErrNoEnvironments
		}
		return project.Environments, nil
	}
	env, err := project.Environment(name)
	if err != nil {
		return nil, err
	}
	return []*domain.Environment{env}, nil
}

// setupOTel registers a tracer provider that reports spans to the logger.
func setupOTel(bridge sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	return telemetry.NewProvider(bridge)
}

package lifecycle

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LockState is the lock status of one environment.
type LockState struct {
	Environment  string
	Spec         *domain.EnvironmentSpec
	Path         string
	Artifact     *domain.LockArtifact
	Fingerprints map[string]string
	Stale        bool
}

// Locker decides when an environment needs locking and drives the external solver.
type Locker struct {
	repo      ports.ProjectRepository
	platforms ports.PlatformDetector
	hasher    ports.Hasher
	locks     ports.LockStore
	solver    ports.DependencySolver
	tracer    ports.Tracer
	logger    ports.Logger
}

// NewLocker creates a new Locker.
func NewLocker(
	repo ports.ProjectRepository,
	platforms ports.PlatformDetector,
	hasher ports.Hasher,
	locks ports.LockStore,
	solver ports.DependencySolver,
	tracer ports.Tracer,
	logger ports.Logger,
) *Locker {
	return &Locker{
		repo:      repo,
		platforms: platforms,
		hasher:    hasher,
		locks:     locks,
		solver:    solver,
		tracer:    tracer,
		logger:    logger,
	}
}

// State loads the spec and the existing lock artifact of env without solving.
func (l *Locker) State(ctx context.Context, project *domain.Project, env *domain.Environment) (*LockState, error) {
	current, err := l.platforms.Current(ctx)
	if err != nil {
		return nil, err
	}

	spec, err := l.repo.LoadEnvironment(env, current)
	if err != nil {
		return nil, err
	}

	fps, err := fingerprints(l.hasher, spec)
	if err != nil {
		return nil, zerr.With(err, "environment", env.Name)
	}

	path := filepath.Join(project.Root, domain.LockFileName(env.Name))
	artifact, err := l.locks.Load(path)
	switch {
	case errors.Is(err, domain.ErrLockParseFailed):
		// An unusable artifact is treated as missing so the next lock replaces it.
		l.logger.Warn("ignoring unreadable lock file " + path + ": " + err.Error())
		artifact = nil
	case err != nil:
		return nil, zerr.With(err, "environment", env.Name)
	}

	return &LockState{
		Environment:  env.Name,
		Spec:         spec,
		Path:         path,
		Artifact:     artifact,
		Fingerprints: fps,
		Stale:        IsStale(spec.Platforms, fps, artifact),
	}, nil
}

// Lock makes sure env has a current lock artifact. Unless force is set, a
// current artifact is returned unchanged without calling the solver. The new
// artifact is written only after every platform resolved.
func (l *Locker) Lock(ctx context.Context, project *domain.Project, env *domain.Environment, force bool) (*LockState, error) {
	ctx, span := l.tracer.Start(ctx, "lock "+env.Name)
	defer span.End()
	span.SetAttribute("environment", env.Name)
	span.SetAttribute("forced", force)

	state, err := l.State(ctx, project, env)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("platforms", state.Spec.Platforms)

	if !force && !state.Stale {
		l.logger.Info("environment " + env.Name + " is already locked")
		return state, nil
	}

	l.logger.Info("locking environment " + env.Name + " for " + strings.Join(state.Spec.Platforms, ", "))

	packages, err := l.solveAll(ctx, project, state.Spec)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	artifact := &domain.LockArtifact{
		Version:     domain.LockVersion,
		ContentHash: state.Fingerprints,
		Channels:    state.Spec.Channels,
		Platforms:   state.Spec.Platforms,
		Sources:     relativeSources(project.Root, state.Spec.SourcePaths()),
		Packages:    packages,
	}

	if err := l.locks.Save(state.Path, artifact); err != nil {
		err = zerr.With(err, "environment", env.Name)
		span.RecordError(err)
		return nil, err
	}

	l.logger.Info("locked environment " + env.Name + " in " + filepath.Base(state.Path))

	state.Artifact = artifact
	state.Stale = false
	return state, nil
}

// solveAll resolves every platform of spec concurrently. All platforms run to
// completion so that every failing platform is reported.
func (l *Locker) solveAll(ctx context.Context, project *domain.Project, spec *domain.EnvironmentSpec) ([]domain.LockedPackage, error) {
	results := make([][]domain.LockedPackage, len(spec.Platforms))
	failures := make([]error, len(spec.Platforms))

	var g errgroup.Group
	for i, platform := range spec.Platforms {
		g.Go(func() error {
			pkgs, err := l.solver.Solve(ctx, ports.SolveRequest{
				Environment: spec.Name,
				Sources:     spec.SourcePaths(),
				Channels:    spec.Channels,
				Platform:    platform,
				Condarc:     project.Condarc,
			})
			results[i] = pkgs
			failures[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	var errs []error
	for i, err := range failures {
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrLockFailed) {
			err = zerr.With(zerr.Wrap(domain.ErrSolveFailed, err.Error()), "platform", spec.Platforms[i])
		}
		failed = append(failed, spec.Platforms[i])
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		err := zerr.Wrap(errors.Join(errs...), "could not lock "+strings.Join(failed, ", "))
		return nil, zerr.With(err, "environment", spec.Name)
	}

	var packages []domain.LockedPackage
	for _, pkgs := range results {
		packages = append(packages, pkgs...)
	}
	return packages, nil
}

func relativeSources(root string, paths []string) []string {
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			r = p
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

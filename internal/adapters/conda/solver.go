package conda

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencySolver = (*Solver)(nil)

// Solver resolves environments with conda-lock, one platform per invocation.
type Solver struct {
	lockExe string
	locks   ports.LockStore
	logger  ports.Logger
	command CommandFunc
}

// NewSolver creates a Solver that runs lockExe and reads its output through locks.
func NewSolver(logger ports.Logger, locks ports.LockStore, lockExe string) *Solver {
	return &Solver{
		lockExe: lockExe,
		locks:   locks,
		logger:  logger,
		command: exec.CommandContext,
	}
}

// Solve runs conda-lock for req.Platform and returns the resolved packages.
func (s *Solver) Solve(ctx context.Context, req ports.SolveRequest) ([]domain.LockedPackage, error) {
	workDir, err := os.MkdirTemp("", "conda-project-lock-*")
	if err != nil {
		return nil, s.solveError(req, err.Error())
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	lockfile := filepath.Join(workDir, "conda-lock.yml")
	args := []string{"lock", "--lockfile", lockfile, "--platform", req.Platform}
	for _, src := range req.Sources {
		args = append(args, "--file", src)
	}
	for _, ch := range req.Channels {
		args = append(args, "--channel", ch)
	}

	var env []string
	if req.Condarc != "" {
		env = append(env, "CONDARC="+req.Condarc)
	}

	if _, err := runTool(ctx, s.logger, s.command, env, s.lockExe, args...); err != nil {
		return nil, s.solveError(req, err.Error())
	}

	artifact, err := s.locks.Load(lockfile)
	if err != nil {
		return nil, s.solveError(req, err.Error())
	}
	if artifact == nil {
		return nil, s.solveError(req, "conda-lock did not write a lock file")
	}

	pkgs := artifact.PackagesFor(req.Platform)
	if len(pkgs) == 0 {
		return nil, s.solveError(req, "conda-lock returned no packages for the platform")
	}
	return pkgs, nil
}

func (s *Solver) solveError(req ports.SolveRequest, reason string) error {
	err := zerr.Wrap(domain.ErrSolveFailed, reason)
	err = zerr.With(err, "environment", req.Environment)
	return zerr.With(err, "platform", req.Platform)
}

package ports

import (
	"context"

	"go.trai.ch/conda-project/internal/core/domain"
)

// SolveRequest is one platform resolution handed to the external locker.
type SolveRequest struct {
	Environment string
	Sources     []string
	Channels    []string
	Platform    string
	// Condarc is the project .condarc passed through to the locker, if any.
	Condarc string
}

// InstallRequest is one install transaction handed to the external installer.
type InstallRequest struct {
	Prefix   string
	Platform string
	Packages []domain.LockedPackage
	Condarc  string
}

// DependencySolver resolves an environment for one platform.
//
//go:generate mockgen -source=conda.go -destination=mocks/mock_conda.go -package=mocks
type DependencySolver interface {
	// Solve returns the resolved packages for req.Platform.
	Solve(ctx context.Context, req SolveRequest) ([]domain.LockedPackage, error)
}

// PackageInstaller materializes and removes prefixes.
type PackageInstaller interface {
	// Install creates req.Prefix from the explicit package list.
	Install(ctx context.Context, req InstallRequest) error

	// Remove deletes the environment at prefix.
	Remove(ctx context.Context, prefix string) error
}

// PlatformDetector reports the platform of the running host.
type PlatformDetector interface {
	// Current returns the conda platform identifier of the host.
	Current(ctx context.Context) (string, error)
}

// EnvironmentLocator finds environments not managed by the project.
type EnvironmentLocator interface {
	// Locate returns the prefix of the environment named or located by nameOrPrefix.
	Locate(ctx context.Context, nameOrPrefix string) (string, error)
}

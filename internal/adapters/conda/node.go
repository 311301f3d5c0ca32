package conda

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/adapters/config"
	"go.trai.ch/conda-project/internal/adapters/logger"
	"go.trai.ch/conda-project/internal/adapters/store"
	"go.trai.ch/conda-project/internal/core/ports"
)

const (
	// ClientNodeID is the unique identifier for the conda client Graft node.
	ClientNodeID graft.ID = "adapter.conda.client"
	// SolverNodeID is the unique identifier for the conda-lock solver Graft node.
	SolverNodeID graft.ID = "adapter.conda.solver"
	// InstallerNodeID is the unique identifier for the package installer Graft node.
	InstallerNodeID graft.ID = "adapter.conda.installer"
	// PlatformNodeID is the unique identifier for the platform detector Graft node.
	PlatformNodeID graft.ID = "adapter.conda.platform"
	// LocatorNodeID is the unique identifier for the external environment locator Graft node.
	LocatorNodeID graft.ID = "adapter.conda.locator"
)

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        ClientNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Client, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(log, settings.CondaExe, settings.Subdir), nil
		},
	})

	graft.Register(graft.Node[ports.DependencySolver]{
		ID:        SolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, store.LockNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.DependencySolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewSolver(log, locks, settings.CondaLockExe), nil
		},
	})

	graft.Register(graft.Node[ports.PackageInstaller]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (ports.PackageInstaller, error) {
			client, err := graft.Dep[*Client](ctx)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	})

	graft.Register(graft.Node[ports.PlatformDetector]{
		ID:        PlatformNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (ports.PlatformDetector, error) {
			client, err := graft.Dep[*Client](ctx)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	})

	graft.Register(graft.Node[ports.EnvironmentLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (ports.EnvironmentLocator, error) {
			client, err := graft.Dep[*Client](ctx)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	})
}

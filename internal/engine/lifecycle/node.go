package lifecycle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/adapters/conda"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/core/ports"
)

const (
	// LockerNodeID is the unique identifier for the locker Graft node.
	LockerNodeID graft.ID = "engine.locker"
	// InstallerNodeID is the unique identifier for the installer Graft node.
	InstallerNodeID graft.ID = "engine.installer"
)

func init() {
	graft.Register(graft.Node[*Locker]{
		ID:        LockerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			conda.PlatformNodeID,
			fs.HasherNodeID,
			store.LockNodeID,
			conda.SolverNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Locker, error) {
			repo, err := graft.Dep[ports.ProjectRepository](ctx)
			if err != nil {
				return nil, err
			}

			platforms, err := graft.Dep[ports.PlatformDetector](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			locks, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}

			solver, err := graft.Dep[ports.DependencySolver](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewLocker(repo, platforms, hasher, locks, solver, tracer, log), nil
		},
	})

	graft.Register(graft.Node[*Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			LockerNodeID,
			conda.InstallerNodeID,
			store.MarkerNodeID,
			fs.ResolverNodeID,
			conda.PlatformNodeID,
			config.SettingsNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			locker, err := graft.Dep[*Locker](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}

			markers, err := graft.Dep[ports.MarkerStore](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.InstallRootResolver](ctx)
			if err != nil {
				return nil, err
			}

			platforms, err := graft.Dep[ports.PlatformDetector](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewInstaller(locker, installer, markers, resolver, platforms, settings.EnvsPath, tracer, log), nil
		},
	})
}

package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/adapters/conda"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/engine/lifecycle"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lifecycle.InstallerNodeID,
			conda.LocatorNodeID,
			shell.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			repo, err := graft.Dep[ports.ProjectRepository](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[*lifecycle.Installer](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[ports.EnvironmentLocator](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
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
			return NewRunner(repo, installer, locator, executor, tracer, log), nil
		},
	})
}

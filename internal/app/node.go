package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/adapters/archive"   //nolint:depguard // Wired in app layer
	"go.trai.ch/conda-project/internal/adapters/conda"     //nolint:depguard // Wired in app layer
	"go.trai.ch/conda-project/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/conda-project/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/conda-project/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/engine/lifecycle"
	"go.trai.ch/conda-project/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			lifecycle.InstallerNodeID,
			runner.NodeID,
			archive.NodeID,
			conda.PlatformNodeID,
			logger.NodeID,
			telemetry.BridgeNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	repo, err := graft.Dep[ports.ProjectRepository](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[*lifecycle.Installer](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.ArchiveFetcher](ctx)
	if err != nil {
		return nil, err
	}

	platforms, err := graft.Dep[ports.PlatformDetector](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	bridge, err := graft.Dep[*telemetry.LogBridge](ctx)
	if err != nil {
		return nil, err
	}

	return New(repo, installer, run, fetcher, platforms, log, bridge, settings.LogLevel), nil
}

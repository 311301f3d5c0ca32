package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/adapters/logger"
	"go.trai.ch/conda-project/internal/core/ports"
)

// NodeID is the unique identifier for the project repository Graft node.
const NodeID graft.ID = "adapter.config"

// SettingsNodeID is the unique identifier for the tool settings Graft node.
const SettingsNodeID graft.ID = "adapter.config.settings"

func init() {
	graft.Register(graft.Node[ports.ProjectRepository]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectRepository, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			settings := LoadSettingsFromEnv()
			return &settings, nil
		},
	})
}

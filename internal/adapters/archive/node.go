package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/adapters/logger"
	"go.trai.ch/conda-project/internal/core/ports"
)

// NodeID is the unique identifier for the archive fetcher Graft node.
const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[ports.ArchiveFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ArchiveFetcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(log), nil
		},
	})
}

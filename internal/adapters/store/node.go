package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conda-project/internal/core/ports"
)

const (
	// LockNodeID is the unique identifier for the lock store Graft node.
	LockNodeID graft.ID = "adapter.store.lock"
	// MarkerNodeID is the unique identifier for the install marker store Graft node.
	MarkerNodeID graft.ID = "adapter.store.marker"
)

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        LockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockStore, error) {
			return NewLockStore(), nil
		},
	})

	graft.Register(graft.Node[ports.MarkerStore]{
		ID:        MarkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MarkerStore, error) {
			return NewMarkerStore(), nil
		},
	})
}

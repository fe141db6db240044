package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oi/internal/adapters/logger"
	"go.trai.ch/oi/internal/core/ports"
)

// NodeID is the unique identifier for the definition store Graft node.
const NodeID graft.ID = "adapter.definition_store"

func init() {
	graft.Register(graft.Node[ports.DefinitionStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DefinitionStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}

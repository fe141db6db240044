package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oi/internal/adapters/logger"
	"go.trai.ch/oi/internal/core/ports"
)

// NodeID is the unique identifier for the layer watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				w, err := NewWatcher(log)
				if err != nil {
					return nil, err
				}
				return w, nil
			}, nil
		},
	})
}

package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oi/internal/adapters/logger"
	"go.trai.ch/oi/internal/core/ports"
)

// NodeID is the unique identifier for the script runner Graft node.
const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.ScriptRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScriptRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}

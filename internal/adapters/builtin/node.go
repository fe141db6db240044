package builtin

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oi/internal/core/ports"
)

// NodeID is the unique identifier for the built-in command table Graft node.
const NodeID graft.ID = "adapter.builtin"

func init() {
	graft.Register(graft.Node[ports.BuiltInProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuiltInProvider, error) {
			provider, err := NewProvider(Table)
			if err != nil {
				return nil, err
			}
			return provider, nil
		},
	})
}

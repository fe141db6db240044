package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oi/internal/core/ports"
)

// Graft node IDs for the filesystem adapters.
const (
	WalkerNodeID       graft.ID = "adapter.fs.walker"
	ScriptListerNodeID graft.ID = "adapter.fs.scripts"
	FileTimesNodeID    graft.ID = "adapter.fs.times"
)

func init() {
	graft.Register(graft.Node[ports.FileWalker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileWalker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.ScriptLister]{
		ID:        ScriptListerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptLister, error) {
			return NewScriptLister(), nil
		},
	})

	graft.Register(graft.Node[ports.FileTimes]{
		ID:        FileTimesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileTimes, error) {
			return NewFileTimes(), nil
		},
	})
}

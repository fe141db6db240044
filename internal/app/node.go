package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oi/internal/adapters/builtin" //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/store"   //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			store.NodeID,
			fs.ScriptListerNodeID,
			fs.FileTimesNodeID,
			fs.WalkerNodeID,
			builtin.NodeID,
			watcher.NodeID,
			logger.NodeID,
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
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.ScriptRunner](ctx)
	if err != nil {
		return nil, err
	}

	definitionStore, err := graft.Dep[ports.DefinitionStore](ctx)
	if err != nil {
		return nil, err
	}

	scripts, err := graft.Dep[ports.ScriptLister](ctx)
	if err != nil {
		return nil, err
	}

	times, err := graft.Dep[ports.FileTimes](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[ports.FileWalker](ctx)
	if err != nil {
		return nil, err
	}

	builtIn, err := graft.Dep[ports.BuiltInProvider](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, definitionStore, scripts, times, walker, builtIn, newWatcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}

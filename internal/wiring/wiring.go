// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/oi/internal/adapters/builtin"
	_ "go.trai.ch/oi/internal/adapters/config"
	_ "go.trai.ch/oi/internal/adapters/fs"
	_ "go.trai.ch/oi/internal/adapters/logger"
	_ "go.trai.ch/oi/internal/adapters/shell"
	_ "go.trai.ch/oi/internal/adapters/store"
	_ "go.trai.ch/oi/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/oi/internal/app"
)

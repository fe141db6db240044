package ports

import "go.trai.ch/oi/internal/core/domain"

// BuiltInProvider defines the interface for the table of commands compiled into the tool.
//
//go:generate mockgen -source=builtin.go -destination=mocks/mock_builtin.go -package=mocks
type BuiltInProvider interface {
	// Commands returns fresh copies of the built-in command trees.
	Commands() []*domain.Item
	// Fingerprint identifies the current table contents.
	Fingerprint() string
}

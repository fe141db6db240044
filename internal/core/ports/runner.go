package ports

import (
	"context"

	"go.trai.ch/oi/internal/core/domain"
)

// ScriptRunner defines the interface for running plugins and scripts.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ScriptRunner interface {
	// Run executes the invocation and returns every tagged line once the
	// process has exited, followed by the synthetic event line.
	//
	// A script that cannot be started is reported as a single error line with
	// exit code -1, not as an error. The error return is reserved for
	// invalid invocations.
	Run(ctx context.Context, inv domain.Invocation) (*domain.Output, error)

	// Stream executes the invocation and delivers tagged lines as they are
	// produced. The channel is closed after the event line, or early when ctx
	// is canceled.
	Stream(ctx context.Context, inv domain.Invocation) (<-chan domain.Line, error)

	// Query asks the script to describe its commands and returns the
	// concatenated plain output. Arguments of inv are ignored.
	Query(ctx context.Context, inv domain.Invocation) (string, error)
}

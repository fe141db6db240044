package ports

import "time"

// FileTimes defines the interface for reading file modification times at the
// resolution used for staleness checks.
//
//go:generate mockgen -source=clock.go -destination=mocks/mock_clock.go -package=mocks
type FileTimes interface {
	// FileTime returns the modification time of path truncated to whole
	// seconds. A time in the future is clamped to now, and the file is
	// touched to match.
	FileTime(path string) (time.Time, error)

	// Now returns the current time truncated to whole seconds.
	Now() time.Time
}

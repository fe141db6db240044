package fs

import (
	"os"
	"time"

	"go.trai.ch/zerr"
)

// FileTimes reads modification times at second resolution.
type FileTimes struct {
	now func() time.Time
}

// NewFileTimes creates a FileTimes using the system clock.
func NewFileTimes() *FileTimes {
	return NewFileTimesWithClock(time.Now)
}

// NewFileTimesWithClock creates a FileTimes reading the current time from now.
func NewFileTimesWithClock(now func() time.Time) *FileTimes {
	return &FileTimes{now: now}
}

// Now returns the current time truncated to whole seconds.
func (f *FileTimes) Now() time.Time {
	return f.now().Truncate(time.Second)
}

// FileTime returns the modification time of path truncated to whole seconds.
// A time in the future is clamped to now and written back to the file, so a
// skewed clock cannot keep a layer stale forever.
func (f *FileTimes) FileTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}

	now := f.Now()
	modified := info.ModTime().Truncate(time.Second)
	if !modified.After(now) {
		return modified, nil
	}

	if err := os.Chtimes(path, now, now); err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(err, "failed to clamp file time"), "path", path)
	}
	return now, nil
}

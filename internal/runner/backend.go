package runner

import (
	"context"
	"fmt"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/result"
)

// Backend executes adapted OpenQASM on one platform and returns the
// normalized result.
type Backend interface {
	// Platform identifies the target this backend drives.
	Platform() platform.Platform

	// Available reports whether the backend can run in this environment.
	Available() bool

	// Run executes the (already adapted) source for the given shot count.
	Run(ctx context.Context, source string, shots int) (*result.Result, error)
}

// ErrNoBackend is returned by AutoSelect when nothing can run.
type ErrNoBackend struct {
	Tried []platform.Platform
}

func (e *ErrNoBackend) Error() string {
	return fmt.Sprintf("no quantum platform available (tried %v): install or configure at least one runner", e.Tried)
}

// AutoSelect walks the platform preference order and returns the first
// backend that reports itself available.
func AutoSelect(backends map[platform.Platform]Backend) (Backend, error) {
	tried := make([]platform.Platform, 0, len(platform.All))
	for _, p := range platform.All {
		b, ok := backends[p]
		if !ok {
			continue
		}
		tried = append(tried, p)
		if b.Available() {
			return b, nil
		}
	}
	return nil, &ErrNoBackend{Tried: tried}
}

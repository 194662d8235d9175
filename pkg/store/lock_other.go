//go:build !unix

package store

import (
	"context"
	"time"
)

// lockPath is a no-op where flock is unavailable.
func lockPath(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	return func() {}, nil
}

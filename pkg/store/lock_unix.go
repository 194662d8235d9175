//go:build unix

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

const flockRetryInterval = 5 * time.Millisecond

// lockPath takes an exclusive flock on the directory holding path and returns
// its release. Nothing is created on disk. It gives up with ErrLockTimeout
// after timeout.
func lockPath(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	dir := filepath.Dir(path)
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for locking: %w", dir, err)
	}

	deadline := time.Now().Add(timeout)
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EWOULDBLOCK) {
			f.Close()
			return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
		}
		if time.Now().After(deadline) {
			f.Close()
			logger.Errorf("get write lock on %s timed out", dir)
			return nil, fmt.Errorf("%s: %w", dir, ErrLockTimeout)
		}
		select {
		case <-ctx.Done():
			f.Close()
			return nil, ctx.Err()
		case <-time.After(flockRetryInterval):
		}
	}

	logger.Tracef("locked %s for %s", dir, filepath.Base(path))
	return func() {
		if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
			logger.Warnf("failed to unlock %s: %v", dir, err)
		}
		f.Close()
	}, nil
}

// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const (
	// lockExpiry bounds how long a crashed writer can block others.
	lockExpiry = 30 * time.Second

	// lockTimeout is how long Lock waits.
	lockTimeout = 10 * time.Second

	lockRetryInterval = 100 * time.Millisecond
)

var ErrLockTimeout = errors.New("lock timeout")

// KEYS[1]: lock key, ARGV[1]: owner ID
const releaseLockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`

// writeLock is an exclusive lock on one key, owned by a random ID so only the
// holder can release it.
type writeLock struct {
	rdb     redis.UniversalClient
	key     string
	ownerID string
}

func newWriteLock(rdb redis.UniversalClient, key string) *writeLock {
	return &writeLock{
		rdb:     rdb,
		key:     fmt.Sprintf("lock:write:%s", key),
		ownerID: uuid.NewString(),
	}
}

// Acquire blocks until the lock is taken, timeout passes or ctx is done.
func (l *writeLock) Acquire(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		acquired, err := l.rdb.SetNX(ctx, l.key, l.ownerID, lockExpiry).Result()
		if err != nil {
			return err
		}
		if acquired {
			logger.Tracef("acquired lock %s as %s", l.key, l.ownerID)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s after %v", ErrLockTimeout, l.key, timeout)
		}

		select {
		case <-time.After(lockRetryInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *writeLock) Release(ctx context.Context) {
	n, err := l.rdb.Eval(ctx, releaseLockScript, []string{l.key}, l.ownerID).Int()
	if err != nil {
		logger.Warnf("failed to release lock %s: %v", l.key, err)
		return
	}
	if n == 0 {
		logger.Warnf("lock %s expired before release", l.key)
	}
}

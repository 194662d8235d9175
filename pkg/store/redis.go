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
	"os"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/zhengshuai-xiao/pngmsg/internal"
)

const (
	redisRetries      = 3
	redisReadTimeout  = 3 * time.Second
	redisWriteTimeout = 3 * time.Second
)

// ErrNotFound is returned when a location holds no data.
var ErrNotFound = errors.New("not found")

// RedisStore implements Store for redis:// locations. The whole file is one
// string value. Lock takes a per-key lock so concurrent edits do not
// interleave.
type RedisStore struct {
	password string

	mu      sync.Mutex
	clients map[string]redis.UniversalClient
}

// NewRedisStore uses password for locations that carry none. An empty password
// falls back to the REDIS_PASSWORD environment variable.
func NewRedisStore(password string) *RedisStore {
	if password == "" {
		password = os.Getenv("REDIS_PASSWORD")
	}
	return &RedisStore{
		password: password,
		clients:  make(map[string]redis.UniversalClient),
	}
}

func (r *RedisStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	loc, rdb, err := r.client(ctx, location)
	if err != nil {
		return nil, err
	}
	data, err := rdb.Get(ctx, loc.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %s: %w", loc, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", loc, err)
	}
	logger.Debugf("read %d bytes from %s", len(data), loc)
	return data, nil
}

func (r *RedisStore) WriteAll(ctx context.Context, location string, data []byte) error {
	loc, rdb, err := r.client(ctx, location)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, loc.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", loc, err)
	}
	logger.Debugf("wrote %d bytes to %s", len(data), loc)
	return nil
}

func (r *RedisStore) Lock(ctx context.Context, location string) (func(), error) {
	loc, rdb, err := r.client(ctx, location)
	if err != nil {
		return nil, err
	}
	lock := newWriteLock(rdb, loc.Key)
	if err := lock.Acquire(ctx, lockTimeout); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", loc, err)
	}
	return func() { lock.Release(context.WithoutCancel(ctx)) }, nil
}

// Close closes every client opened so far.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for addr, rdb := range r.clients {
		if err := rdb.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.clients, addr)
	}
	return errors.Join(errs...)
}

func (r *RedisStore) client(ctx context.Context, location string) (Location, redis.UniversalClient, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return Location{}, nil, err
	}
	if loc.Scheme != SchemeRedis {
		return Location{}, nil, fmt.Errorf("%w: %s is not a redis location", ErrInvalidLocation, internal.RemovePassword(location))
	}
	if loc.Password == "" {
		loc.Password = r.password
	}

	id := fmt.Sprintf("%s/%d", loc.Host, loc.DB)
	r.mu.Lock()
	defer r.mu.Unlock()
	if rdb, ok := r.clients[id]; ok {
		return loc, rdb, nil
	}

	rdb, err := newRedisClient(ctx, loc)
	if err != nil {
		return Location{}, nil, err
	}
	r.clients[id] = rdb
	return loc, rdb, nil
}

func newRedisClient(ctx context.Context, loc Location) (redis.UniversalClient, error) {
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{loc.Host},
		DB:           loc.DB,
		Password:     loc.Password,
		MaxRetries:   redisRetries,
		ReadTimeout:  redisReadTimeout,
		WriteTimeout: redisWriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", loc.Host, err)
	}
	logger.Infof("connected to redis at %s, db %d", loc.Host, loc.DB)
	return rdb, nil
}

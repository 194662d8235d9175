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
	"io"
	"sync"

	"github.com/zhengshuai-xiao/pngmsg/internal"
)

// Router implements Store by sending each location to the backend for its
// scheme. Remote backends are created on first use.
type Router struct {
	conf *internal.Config

	mu    sync.Mutex
	posix Store
	s3    Store
	redis Store
}

func NewRouter(conf *internal.Config) *Router {
	return &Router{conf: conf, posix: NewPOSIXStore()}
}

func (r *Router) ReadAll(ctx context.Context, location string) ([]byte, error) {
	backend, err := r.backend(ctx, location)
	if err != nil {
		return nil, err
	}
	return backend.ReadAll(ctx, location)
}

func (r *Router) WriteAll(ctx context.Context, location string, data []byte) error {
	backend, err := r.backend(ctx, location)
	if err != nil {
		return err
	}
	return backend.WriteAll(ctx, location, data)
}

func (r *Router) Lock(ctx context.Context, location string) (func(), error) {
	backend, err := r.backend(ctx, location)
	if err != nil {
		return nil, err
	}
	return backend.Lock(ctx, location)
}

// Close releases backends that hold connections.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, backend := range []Store{r.posix, r.s3, r.redis} {
		if c, ok := backend.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

func (r *Router) backend(ctx context.Context, location string) (Store, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	switch loc.Scheme {
	case SchemeFile:
		return r.posix, nil
	case SchemeS3:
		if r.s3 == nil {
			s3, err := r.newS3(ctx)
			if err != nil {
				return nil, err
			}
			r.s3 = s3
		}
		return r.s3, nil
	case SchemeRedis:
		if r.redis == nil {
			r.redis = NewRedisStore(r.conf.RedisPassword)
		}
		return r.redis, nil
	default:
		return nil, fmt.Errorf("%w: no backend for %s", ErrInvalidLocation, loc.Scheme)
	}
}

func (r *Router) newS3(ctx context.Context) (Store, error) {
	logger.Debugf("creating %s s3 backend for %s", r.conf.S3Driver, r.conf.S3Endpoint)
	switch r.conf.S3Driver {
	case internal.S3DriverAWS:
		s, err := NewAWSStore(ctx, r.conf)
		if err != nil {
			return nil, err
		}
		return s, nil
	case internal.S3DriverMinio, "":
		s, err := NewMinioStore(r.conf)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown s3 driver %q", r.conf.S3Driver)
	}
}

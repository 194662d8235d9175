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
	"net/url"
	"strconv"
	"strings"

	"github.com/zhengshuai-xiao/pngmsg/internal"
)

var logger = internal.GetLogger("store")

// ErrInvalidLocation is returned for locations no backend can serve.
var ErrInvalidLocation = errors.New("invalid location")

// Store reads and writes whole files. Callers hand the bytes to the codec; a
// Store never interprets them.
type Store interface {
	// ReadAll returns the full content stored at location.
	ReadAll(ctx context.Context, location string) ([]byte, error)
	// WriteAll replaces the content stored at location with data.
	WriteAll(ctx context.Context, location string, data []byte) error
	// Lock takes an exclusive lock covering location and returns its release.
	// Callers hold it across read, modify and write.
	Lock(ctx context.Context, location string) (unlock func(), err error)
}

type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeRedis Scheme = "redis"
)

// Location is a parsed store address:
//
//	/path/to/file.png or file:///path/to/file.png
//	s3://bucket/object/key.png
//	redis://[:password@]host:port[/db]/key
type Location struct {
	Scheme Scheme

	// Path is set for SchemeFile.
	Path string

	// Bucket is set for SchemeS3.
	Bucket string
	// Key is set for SchemeS3 and SchemeRedis.
	Key string

	// Host, DB and Password are set for SchemeRedis.
	Host     string
	DB       int
	Password string
}

func (l Location) String() string {
	switch l.Scheme {
	case SchemeS3:
		return fmt.Sprintf("s3://%s/%s", l.Bucket, l.Key)
	case SchemeRedis:
		return fmt.Sprintf("redis://%s/%d/%s", l.Host, l.DB, l.Key)
	default:
		return l.Path
	}
}

func ParseLocation(s string) (Location, error) {
	if s == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return Location{Scheme: SchemeFile, Path: s}, nil
	}

	switch Scheme(strings.ToLower(scheme)) {
	case SchemeFile:
		if rest == "" {
			return Location{}, fmt.Errorf("%w: %s has no path", ErrInvalidLocation, s)
		}
		return Location{Scheme: SchemeFile, Path: rest}, nil
	case SchemeS3:
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %s needs s3://bucket/key", ErrInvalidLocation, s)
		}
		return Location{Scheme: SchemeS3, Bucket: bucket, Key: key}, nil
	case SchemeRedis:
		return parseRedisLocation(s)
	default:
		return Location{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, scheme)
	}
}

func parseRedisLocation(s string) (Location, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	if u.Host == "" {
		return Location{}, fmt.Errorf("%w: %s has no host", ErrInvalidLocation, internal.RemovePassword(s))
	}
	loc := Location{Scheme: SchemeRedis, Host: u.Host}
	if u.User != nil {
		loc.Password, _ = u.User.Password()
	}

	path := strings.TrimPrefix(u.Path, "/")
	if first, rest, ok := strings.Cut(path, "/"); ok {
		if db, err := strconv.Atoi(first); err == nil {
			loc.DB = db
			path = rest
		}
	}
	if path == "" {
		return Location{}, fmt.Errorf("%w: %s has no key", ErrInvalidLocation, internal.RemovePassword(s))
	}
	loc.Key = path
	return loc, nil
}

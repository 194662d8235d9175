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
	"fmt"
	"os"

	"github.com/zhengshuai-xiao/pngmsg/internal"
)

// POSIXStore implements Store on the local filesystem.
type POSIXStore struct{}

func NewPOSIXStore() *POSIXStore {
	return &POSIXStore{}
}

func (p *POSIXStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	loc, err := p.path(location)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}
	logger.Debugf("read %d bytes from %s", len(data), loc)
	return data, nil
}

// WriteAll replaces the file atomically.
func (p *POSIXStore) WriteAll(ctx context.Context, location string, data []byte) error {
	loc, err := p.path(location)
	if err != nil {
		return err
	}
	if err := internal.WriteFileAtomic(loc, data, 0644); err != nil {
		return err
	}
	logger.Debugf("wrote %d bytes to %s", len(data), loc)
	return nil
}

// Lock takes an advisory lock on the directory holding the file, where the
// platform has one. The file itself is replaced on every write, so its inode
// cannot carry the lock.
func (p *POSIXStore) Lock(ctx context.Context, location string) (func(), error) {
	loc, err := p.path(location)
	if err != nil {
		return nil, err
	}
	return lockPath(ctx, loc, lockTimeout)
}

func (p *POSIXStore) path(location string) (string, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return "", err
	}
	if loc.Scheme != SchemeFile {
		return "", fmt.Errorf("%w: %s is not a local path", ErrInvalidLocation, location)
	}
	return loc.Path, nil
}

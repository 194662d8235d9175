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
	"bytes"
	"context"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/zhengshuai-xiao/pngmsg/internal"
)

// MinioStore implements Store for s3:// locations with minio-go.
type MinioStore struct {
	client *miniogo.Client
}

func NewMinioStore(conf *internal.Config) (*MinioStore, error) {
	client, err := miniogo.New(conf.S3HostPort(), &miniogo.Options{
		Creds:  credentials.NewStaticV4(conf.S3AccessKey, conf.S3SecretKey, ""),
		Secure: conf.S3UseSSL,
		Region: conf.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", conf.S3Endpoint, err)
	}
	logger.Infof("minio client created for %s", conf.S3Endpoint)
	return &MinioStore{client: client}, nil
}

func (m *MinioStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	loc, err := s3Location(location)
	if err != nil {
		return nil, err
	}
	obj, err := m.client.GetObject(ctx, loc.Bucket, loc.Key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", loc, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if miniogo.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %s: %w", loc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read object %s: %w", loc, err)
	}
	logger.Debugf("read %d bytes from %s", len(data), loc)
	return data, nil
}

func (m *MinioStore) WriteAll(ctx context.Context, location string, data []byte) error {
	loc, err := s3Location(location)
	if err != nil {
		return err
	}
	opts := miniogo.PutObjectOptions{ContentType: "image/png"}
	info, err := m.client.PutObject(ctx, loc.Bucket, loc.Key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", loc, err)
	}
	logger.Debugf("wrote %d bytes to %s, etag %s", info.Size, loc, info.ETag)
	return nil
}

// Lock only checks the location. S3 offers no lock, so concurrent edits of
// one object are last-writer-wins.
func (m *MinioStore) Lock(ctx context.Context, location string) (func(), error) {
	if _, err := s3Location(location); err != nil {
		return nil, err
	}
	return func() {}, nil
}

func s3Location(location string) (Location, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return Location{}, err
	}
	if loc.Scheme != SchemeS3 {
		return Location{}, fmt.Errorf("%w: %s is not an s3 location", ErrInvalidLocation, location)
	}
	return loc, nil
}

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
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/zhengshuai-xiao/pngmsg/internal"
)

// AWSStore implements Store for s3:// locations with the AWS SDK. Without an
// access key the SDK's default credential chain is used.
type AWSStore struct {
	client *s3.Client
}

func NewAWSStore(ctx context.Context, conf *internal.Config) (*AWSStore, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.S3Region),
		config.WithLogger(logger),
		config.WithClientLogMode(aws.LogRetries),
	}
	if conf.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.S3AccessKey, conf.S3SecretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := conf.S3EndpointURL()
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	logger.Infof("aws s3 client created, region %s, endpoint %q", conf.S3Region, endpoint)
	return &AWSStore{client: client}, nil
}

func (a *AWSStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	loc, err := s3Location(location)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, fmt.Errorf("object %s: %w", loc, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", loc, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", loc, err)
	}
	logger.Debugf("read %d bytes from %s", len(data), loc)
	return data, nil
}

func (a *AWSStore) WriteAll(ctx context.Context, location string, data []byte) error {
	loc, err := s3Location(location)
	if err != nil {
		return err
	}
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(loc.Bucket),
		Key:           aws.String(loc.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", loc, err)
	}
	logger.Debugf("wrote %d bytes to %s", len(data), loc)
	return nil
}

// Lock only checks the location, as for MinioStore.
func (a *AWSStore) Lock(ctx context.Context, location string) (func(), error) {
	if _, err := s3Location(location); err != nil {
		return nil, err
	}
	return func() {}, nil
}

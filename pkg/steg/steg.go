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
package steg

import (
	"context"
	"fmt"
	"time"

	"github.com/zhengshuai-xiao/pngmsg/internal"
	"github.com/zhengshuai-xiao/pngmsg/internal/compression"
	"github.com/zhengshuai-xiao/pngmsg/pkg/png"
	"github.com/zhengshuai-xiao/pngmsg/pkg/store"
)

var logger = internal.GetLogger("steg")

// Service runs the message commands against files held in a store. A nil
// compressor stores messages as given.
type Service struct {
	store      store.Store
	compressor compression.Compressor
}

func New(st store.Store, c compression.Compressor) *Service {
	return &Service{store: st, compressor: c}
}

type EncodeRequest struct {
	Input   string
	Tag     string
	Message string
	// Output defaults to Input.
	Output string
}

// Report is the result of Inspect.
type Report struct {
	Location string
	Size     int
	Chunks   []png.ChunkInfo
	// Tags holds each distinct chunk type once.
	Tags *internal.StringSet
	// Raw is the diagnostic string form of the whole container.
	Raw string
}

func (s *Service) load(ctx context.Context, location string) (*png.Container, int, error) {
	logger.Tracef("%s: enter, location %s", internal.GetCurrentFuncName(), location)
	data, err := s.store.ReadAll(ctx, location)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", location, err)
	}
	c, err := png.ParseContainer(data)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	logger.Debugf("%s: %d chunks in %s", location, c.Len(), internal.FormatBytes(uint64(len(data))))
	return c, len(data), nil
}

func (s *Service) save(ctx context.Context, location string, c *png.Container) error {
	data := c.Bytes()
	if err := s.store.WriteAll(ctx, location, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	logger.Debugf("%s: wrote %d chunks in %s", location, c.Len(), internal.FormatBytes(uint64(len(data))))
	return nil
}

// Encode appends a chunk carrying req.Message and writes the result to
// req.Output. The output stays locked from read to write.
func (s *Service) Encode(ctx context.Context, req EncodeRequest) (*png.Chunk, error) {
	start := time.Now()
	output := req.Output
	if output == "" {
		output = req.Input
	}
	unlock, err := s.store.Lock(ctx, output)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", output, err)
	}
	defer unlock()

	c, _, err := s.load(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	payload := []byte(req.Message)
	if s.compressor != nil {
		if payload, err = s.compressor.Compress(payload); err != nil {
			return nil, fmt.Errorf("failed to compress message with %s: %w", s.compressor.TypeString(), err)
		}
		logger.Debugf("compressed message %d -> %d bytes with %s", len(req.Message), len(payload), s.compressor.TypeString())
	}

	chunk, err := png.Encode(c, req.Tag, payload)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, output, c); err != nil {
		return nil, err
	}
	logger.Infof("added %s chunk (%d bytes) to %s in %v", req.Tag, chunk.Length(), output, time.Since(start))
	return chunk, nil
}

// Decode returns the message held in the first chunk of type tag.
func (s *Service) Decode(ctx context.Context, input, tag string) (string, error) {
	c, _, err := s.load(ctx, input)
	if err != nil {
		return "", err
	}
	if s.compressor == nil {
		return png.Decode(c, tag)
	}

	chunk, ok := c.ChunkByType(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", png.ErrChunkNotFound, tag)
	}
	plain, err := s.compressor.Decompress(chunk.Data())
	if err != nil {
		return "", fmt.Errorf("failed to decompress %s chunk with %s: %w", tag, s.compressor.TypeString(), err)
	}
	return png.NewChunk(chunk.Type(), plain).DataAsString()
}

// Remove strips the first chunk of type tag and writes the file back in place.
func (s *Service) Remove(ctx context.Context, input, tag string) (*png.Chunk, error) {
	unlock, err := s.store.Lock(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", input, err)
	}
	defer unlock()

	c, _, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	chunk, err := png.Remove(c, tag)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, input, c); err != nil {
		return nil, err
	}
	logger.Infof("removed %s chunk (%d bytes) from %s", tag, chunk.Length(), input)
	return chunk, nil
}

func (s *Service) Inspect(ctx context.Context, input string) (*Report, error) {
	c, size, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	report := &Report{
		Location: input,
		Size:     size,
		Chunks:   png.Inspect(c),
		Tags:     internal.NewStringSet(),
		Raw:      c.String(),
	}
	for _, info := range report.Chunks {
		report.Tags.Add(info.Type)
	}
	return report, nil
}

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
package png

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/zhengshuai-xiao/pngmsg/internal"
)

// Signature is the fixed 8-byte prefix of every PNG file.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// Container is an ordered chunk sequence behind the PNG signature.
type Container struct {
	chunks []*Chunk
}

// NewContainer takes ownership of chunks.
func NewContainer(chunks []*Chunk) *Container {
	return &Container{chunks: chunks}
}

// ParseContainer checks the signature and parses every chunk that follows it.
// A chunk error is returned as is, annotated with the chunk index.
func ParseContainer(data []byte) (*Container, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return nil, ErrBadSignature
	}

	c := &Container{}
	rest := data[len(Signature):]
	for len(rest) > 0 {
		n := nextChunkSize(rest)
		chunk, err := ParseChunk(rest[:n])
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", len(c.chunks), err)
		}
		c.chunks = append(c.chunks, chunk)
		rest = rest[n:]
	}
	return c, nil
}

// nextChunkSize returns how many bytes of rest belong to the next chunk. When
// the chunk is incomplete all of rest is returned so ParseChunk reports why.
func nextChunkSize(rest []byte) int {
	if len(rest) < chunkOverhead {
		return len(rest)
	}
	length := uint64(internal.BytesToUInt32BigEndian(rest[:lengthSize]))
	if length > uint64(math.MaxInt-chunkOverhead) || int(length)+chunkOverhead > len(rest) {
		return len(rest)
	}
	return int(length) + chunkOverhead
}

// Chunks returns the chunks in file order. The slice must not be modified.
func (c *Container) Chunks() []*Chunk {
	return c.chunks
}

func (c *Container) Len() int {
	return len(c.chunks)
}

// Append adds chunk after the last chunk.
func (c *Container) Append(chunk *Chunk) {
	c.chunks = append(c.chunks, chunk)
}

// ChunkByType returns the first chunk whose type renders as tag.
func (c *Container) ChunkByType(tag string) (*Chunk, bool) {
	i := c.indexOf(tag)
	if i < 0 {
		return nil, false
	}
	return c.chunks[i], true
}

// RemoveByType removes and returns the first chunk whose type renders as tag.
// The container is left untouched when no chunk matches.
func (c *Container) RemoveByType(tag string) (*Chunk, error) {
	i := c.indexOf(tag)
	if i < 0 {
		return nil, notFoundError(tag)
	}
	chunk := c.chunks[i]
	c.chunks = append(c.chunks[:i:i], c.chunks[i+1:]...)
	return chunk, nil
}

func (c *Container) indexOf(tag string) int {
	for i, chunk := range c.chunks {
		if chunk.Type().String() == tag {
			return i
		}
	}
	return -1
}

// Bytes returns the signature followed by every chunk's wire form.
func (c *Container) Bytes() []byte {
	size := len(Signature)
	for _, chunk := range c.chunks {
		size += chunkOverhead + chunk.Length()
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, chunk := range c.chunks {
		buf = append(buf, chunk.Bytes()...)
	}
	return buf
}

// String concatenates the display form of every chunk. It cannot be parsed back.
func (c *Container) String() string {
	var sb strings.Builder
	for _, chunk := range c.chunks {
		sb.WriteString(chunk.String())
	}
	return sb.String()
}

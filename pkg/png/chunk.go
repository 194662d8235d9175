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
	"fmt"
	"math"

	"github.com/zhengshuai-xiao/pngmsg/internal"
)

const (
	lengthSize = 4
	crcSize    = 4

	// chunkOverhead is the size of a chunk with no data.
	chunkOverhead = lengthSize + tagSize + crcSize
)

// Chunk is one length-prefixed, typed, CRC-checked record.
//
// Type and data are fixed at construction. The CRC is computed on first use and
// cached; a Chunk is not safe for concurrent first use.
type Chunk struct {
	tag  Tag
	data []byte

	crc      uint32
	crcReady bool
}

// NewChunk builds a chunk that owns data.
func NewChunk(tag Tag, data []byte) *Chunk {
	if data == nil {
		data = []byte{}
	}
	return &Chunk{tag: tag, data: data}
}

// Length returns the number of data bytes.
func (c *Chunk) Length() int {
	return len(c.data)
}

func (c *Chunk) Type() Tag {
	return c.tag
}

func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the CRC-32 of type and data.
func (c *Chunk) CRC() uint32 {
	if !c.crcReady {
		c.crc = internal.CalculateCRC32Parts(c.tag[:], c.data)
		c.crcReady = true
	}
	return c.crc
}

// DataAsString decodes the data as UTF-8, substituting U+FFFD for invalid
// sequences. The error is always nil.
func (c *Chunk) DataAsString() (string, error) {
	return lossyString(c.data), nil
}

// Bytes returns the wire form: length, type, data, CRC.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, 0, chunkOverhead+len(c.data))
	length := internal.UInt32ToBytesBigEndian(uint32(len(c.data)))
	buf = append(buf, length[:]...)
	buf = append(buf, c.tag[:]...)
	buf = append(buf, c.data...)
	crc := internal.UInt32ToBytesBigEndian(c.CRC())
	return append(buf, crc[:]...)
}

// String is the wire form decoded as lossy UTF-8. It is for display only.
func (c *Chunk) String() string {
	return lossyString(c.Bytes())
}

// ParseChunk parses exactly one chunk. The slice must hold the whole chunk and
// nothing else.
//
// Returns ErrTruncatedInput if data is shorter than the fixed fields,
// ErrSizeMismatch if the length field disagrees with len(data), ErrFormat for a
// non-alphabetic type and a *ChecksumError if the CRC does not match.
func ParseChunk(data []byte) (*Chunk, error) {
	if len(data) < chunkOverhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedInput, len(data), chunkOverhead)
	}

	length := internal.BytesToUInt32BigEndian(data[0:lengthSize])
	if uint64(length) > uint64(math.MaxInt-chunkOverhead) {
		return nil, fmt.Errorf("%w: length %d does not fit", ErrSizeMismatch, length)
	}
	total := int(length) + chunkOverhead
	if len(data) != total {
		return nil, fmt.Errorf("%w: length field says %d bytes, got %d", ErrSizeMismatch, total, len(data))
	}

	rest := data[lengthSize:]
	tag, err := TagFromBytes(rest[:tagSize])
	if err != nil {
		return nil, err
	}
	if !tag.isAlphabetic() {
		return nil, formatError("not ASCII alphabetic")
	}
	rest = rest[tagSize:]

	payload := make([]byte, length)
	copy(payload, rest[:length])
	rest = rest[length:]

	expected := internal.BytesToUInt32BigEndian(rest[:crcSize])
	rest = rest[crcSize:]
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(rest))
	}

	chunk := NewChunk(tag, payload)
	if computed := chunk.CRC(); computed != expected {
		return nil, &ChecksumError{Computed: computed, Expected: expected}
	}
	return chunk, nil
}

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

// ChunkInfo summarizes one chunk for inspection.
type ChunkInfo struct {
	Index      int
	Type       string
	Length     int
	CRC        uint32
	Valid      bool
	Critical   bool
	Public     bool
	SafeToCopy bool
}

// Encode appends a chunk of type tag carrying message. The caller serializes
// the container afterwards.
func Encode(c *Container, tag string, message []byte) (*Chunk, error) {
	t, err := ParseTag(tag)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, len(message))
	copy(payload, message)
	chunk := NewChunk(t, payload)
	c.Append(chunk)
	return chunk, nil
}

// Decode returns the data of the first chunk of type tag as text.
func Decode(c *Container, tag string) (string, error) {
	chunk, ok := c.ChunkByType(tag)
	if !ok {
		return "", notFoundError(tag)
	}
	return chunk.DataAsString()
}

// Remove strips the first chunk of type tag and returns it.
func Remove(c *Container, tag string) (*Chunk, error) {
	return c.RemoveByType(tag)
}

// Inspect describes every chunk in file order.
func Inspect(c *Container) []ChunkInfo {
	infos := make([]ChunkInfo, 0, c.Len())
	for i, chunk := range c.Chunks() {
		t := chunk.Type()
		infos = append(infos, ChunkInfo{
			Index:      i,
			Type:       t.String(),
			Length:     chunk.Length(),
			CRC:        chunk.CRC(),
			Valid:      t.IsValid(),
			Critical:   t.IsCritical(),
			Public:     t.IsPublic(),
			SafeToCopy: t.IsSafeToCopy(),
		})
	}
	return infos
}

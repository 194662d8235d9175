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

const (
	tagSize = 4

	// propertyBit is bit 5 of each type byte, the ASCII lowercase bit.
	propertyBit = 1 << 5
)

// Tag is a 4-byte chunk type such as "IHDR" or "RuSt".
//
// The four property flags are read from bit 5 of each byte and do not depend on
// IsValid. A Tag built from raw bytes is never rejected; validity is something
// callers ask about.
type Tag [tagSize]byte

// NewTag wraps raw bytes without checking them.
func NewTag(b [tagSize]byte) Tag {
	return Tag(b)
}

// TagFromBytes builds a Tag from a slice, which must hold exactly 4 bytes.
func TagFromBytes(b []byte) (Tag, error) {
	if len(b) != tagSize {
		return Tag{}, formatError("not 4 bytes")
	}
	var t Tag
	copy(t[:], b)
	return t, nil
}

// ParseTag parses a 4-character, ASCII alphabetic chunk type.
func ParseTag(s string) (Tag, error) {
	if len(s) != tagSize {
		return Tag{}, formatError("not 4 bytes")
	}
	var t Tag
	copy(t[:], s)
	if !t.isAlphabetic() {
		return Tag{}, formatError("not ASCII alphabetic")
	}
	return t, nil
}

// Bytes returns the raw type bytes.
func (t Tag) Bytes() [tagSize]byte {
	return t
}

// IsValid reports whether every byte is ASCII alphabetic and the reserved bit is clear.
func (t Tag) IsValid() bool {
	return t.isAlphabetic() && t.IsReservedBitValid()
}

// IsCritical reports whether decoders must understand the chunk (byte 0 uppercase).
func (t Tag) IsCritical() bool {
	return t[0]&propertyBit == 0
}

// IsPublic reports whether the type is registered (byte 1 uppercase).
func (t Tag) IsPublic() bool {
	return t[1]&propertyBit == 0
}

// IsReservedBitValid reports whether byte 2 is uppercase.
func (t Tag) IsReservedBitValid() bool {
	return t[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors may copy the chunk without understanding it (byte 3 lowercase).
func (t Tag) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// String renders the bytes as UTF-8, replacing invalid sequences with U+FFFD.
func (t Tag) String() string {
	return lossyString(t[:])
}

func (t Tag) isAlphabetic() bool {
	for _, b := range t {
		if !isASCIIAlpha(b) {
			return false
		}
	}
	return true
}

func isASCIIAlpha(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

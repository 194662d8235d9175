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
	"errors"
	"fmt"
)

// Package-level errors for chunk and container parsing.
var (
	// ErrFormat indicates a malformed chunk type, either from a string or from raw bytes.
	ErrFormat = errors.New("png: malformed chunk type")

	// ErrTruncatedInput indicates fewer bytes than the fixed chunk fields need.
	ErrTruncatedInput = errors.New("png: truncated input")

	// ErrSizeMismatch indicates the length field disagrees with the bytes supplied.
	ErrSizeMismatch = errors.New("png: chunk size mismatch")

	// ErrTrailingBytes indicates bytes left over after the CRC field.
	ErrTrailingBytes = errors.New("png: trailing bytes after chunk")

	// ErrChecksumMismatch indicates the stored CRC does not match the computed value.
	ErrChecksumMismatch = errors.New("png: CRC mismatch")

	// ErrBadSignature indicates the input does not start with the PNG signature.
	ErrBadSignature = errors.New("png: bad signature")

	// ErrChunkNotFound indicates no chunk of the requested type exists.
	ErrChunkNotFound = errors.New("png: chunk not found")
)

// ChecksumError carries both sides of a failed CRC comparison.
type ChecksumError struct {
	Computed uint32
	Expected uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%v: computed %d, expected %d", ErrChecksumMismatch, e.Computed, e.Expected)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}

func formatError(reason string) error {
	return fmt.Errorf("%w: %s", ErrFormat, reason)
}

func notFoundError(tag string) error {
	return fmt.Errorf("%w: %q", ErrChunkNotFound, tag)
}

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

// Package png reads and writes the PNG chunk stream.
//
// A file is the 8-byte PNG signature followed by chunks. Each chunk is laid out as:
//
//	Length (4, big-endian) | Type (4) | Data (Length) | CRC (4, big-endian)
//
// The CRC is CRC-32/ISO-HDLC over Type and Data. The package never decodes pixel
// data; it only models chunks so that auxiliary chunks can be added, read and
// stripped while every other byte round-trips unchanged.
//
// Parsing works on an already materialized byte slice. Nothing here does I/O or
// keeps global state.
package png

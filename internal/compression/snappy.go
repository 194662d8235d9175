package compression

import (
	"fmt"

	"github.com/golang/snappy"
)

// SnappyCompressor implements the Compressor interface using Snappy block format.
type SnappyCompressor struct{}

func NewSnappy() *SnappyCompressor {
	return &SnappyCompressor{}
}

func (c *SnappyCompressor) Type() CompressionType {
	return Compress_snappy
}

func (c *SnappyCompressor) TypeString() string {
	return "snappy"
}

func (c *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (c *SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy: %w", err)
	}
	if decompressed == nil {
		return []byte{}, nil
	}
	return decompressed, nil
}

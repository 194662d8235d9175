package compression

import "errors"

type CompressionType byte

const (
	Compress_zlib   CompressionType = iota //0
	Compress_snappy                        //1
	Compress_none   CompressionType = 0xFF
)

var ErrInvalidCompressionType = errors.New("invalid compression type")

var (
	CompressionMethods = map[string]CompressionType{
		"none":   Compress_none,
		"zlib":   Compress_zlib,
		"snappy": Compress_snappy,
	}
)

// Compressor defines the interface for compressing hidden message payloads.
type Compressor interface {
	// Compress takes a byte slice and returns the compressed data.
	Compress(data []byte) ([]byte, error)

	// Decompress takes a compressed byte slice and returns the original data.
	Decompress(data []byte) ([]byte, error)

	// TypeString returns the name of the algorithm, e.g. "zlib", "snappy".
	TypeString() string
	Type() CompressionType
}

// GetCompressorViaString maps a method name to a Compressor. "none" and ""
// yield a nil Compressor and no error.
func GetCompressorViaString(compressionStr string) (Compressor, error) {
	if compressionStr == "" {
		return nil, nil
	}
	compressionType, ok := CompressionMethods[compressionStr]
	if !ok {
		return nil, ErrInvalidCompressionType
	}
	return GetCompressorViaType(compressionType)
}

func GetCompressorViaType(compressionType CompressionType) (Compressor, error) {
	switch compressionType {
	case Compress_none:
		return nil, nil
	case Compress_zlib:
		return NewZlib(), nil
	case Compress_snappy:
		return NewSnappy(), nil
	default:
		return nil, ErrInvalidCompressionType
	}
}

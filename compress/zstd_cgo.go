//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// zstdLevel is the compression level used with the cgo implementation.
const zstdLevel = 3

// ZstdCodec compresses payloads as zstd frames.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Compress compresses data with libzstd.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes a zstd frame with libzstd.
func (ZstdCodec) Decompress(dst, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return dst[:0], nil
	}

	out, err := gozstd.Decompress(dst[:0], data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}

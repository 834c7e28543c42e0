package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// maxLZ4Output bounds the buffer grown for an LZ4 block of unknown size.
const maxLZ4Output = 128 * 1024 * 1024

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses payloads as raw LZ4 blocks.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses data into a single LZ4 block.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block. The block does not record its decoded
// size: decoding starts with the capacity of dst, or four times the input
// when dst has none, and doubles the buffer up to 128 MiB.
func (LZ4Codec) Decompress(dst, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return dst[:0], nil
	}

	buf := dst[:cap(dst)]
	if len(buf) == 0 {
		buf = make([]byte, len(data)*4)
	}

	for {
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}

		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || len(buf) >= maxLZ4Output {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}

		buf = make([]byte, min(2*len(buf), maxLZ4Output))
	}
}

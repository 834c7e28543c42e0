package compress

import (
	"fmt"

	"github.com/arloliu/esync/format"
)

// Compressor compresses a record payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified. An empty input yields an empty output.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a record payload.
type Decompressor interface {
	// Decompress returns the decompressed form of data. The capacity of dst
	// is reused when it is large enough; its contents are overwritten.
	// Corrupted input is reported as an error.
	Decompress(dst, data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

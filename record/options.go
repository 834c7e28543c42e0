package record

import (
	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/internal/options"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian writes record bodies in little-endian order. This is the
// default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.BigEndian = false
	})
}

// WithBigEndian writes record bodies in big-endian order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.BigEndian = true
	})
}

// WithCompression selects the payload codec. The default is
// format.CompressionZstd.
func WithCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		return e.setCompression(compression)
	})
}

// ReaderOption configures a Reader and the Decoder that creates it.
type ReaderOption = options.Option[*readerConfig]

type readerConfig struct {
	unpack bool
}

func defaultReaderConfig() *readerConfig {
	return &readerConfig{unpack: true}
}

// WithUnpackData controls whether payloads are decompressed. When disabled
// the payload is skipped and records carry no samples. The default is true.
func WithUnpackData(unpack bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.unpack = unpack
	})
}

package compress

// NoOpCodec stores payloads uncompressed.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a codec that passes data through.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data itself. The result shares memory with the input.
func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress copies data into dst.
func (NoOpCodec) Decompress(dst, data []byte) ([]byte, error) {
	return append(dst[:0], data...), nil
}

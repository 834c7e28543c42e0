// Package compress provides the payload codecs of the record container.
//
// Each record stores its sample bytes compressed with one of the algorithms
// named by format.CompressionType:
//   - None: payload stored as is
//   - Zstd: best ratio, moderate speed
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Zstd uses github.com/valyala/gozstd when cgo is available and the pure Go
// github.com/klauspost/compress/zstd otherwise. Both produce standard zstd
// frames, so payloads written by one build decode with the other.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(samples)
//	...
//	samples, err = codec.Decompress(make([]byte, 0, size), packed)
//
// The decoder knows the uncompressed size from the record header and passes
// a buffer of that capacity as dst, so no codec has to guess it.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Internal
// encoders and decoders are pooled.
package compress

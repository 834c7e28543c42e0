package record

import (
	"fmt"
	"hash/crc32"
	"io"

	"github.com/arloliu/esync/compress"
	"github.com/arloliu/esync/endian"
	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/internal/options"
	"github.com/arloliu/esync/internal/pool"
	"github.com/arloliu/esync/trace"
)

// Encoder writes trace records in the container format.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w      io.Writer
	header Header
	codec  compress.Codec
	count  int
}

// NewEncoder creates an Encoder writing to w.
//
// Example:
//
//	enc, err := record.NewEncoder(f,
//	    record.WithBigEndian(),
//	    record.WithCompression(format.CompressionS2),
//	)
func NewEncoder(w io.Writer, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		w:      w,
		header: Header{Version: Version},
	}

	if err := e.setCompression(format.CompressionZstd); err != nil {
		return nil, err
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Encoder) setCompression(compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrConfig, err)
	}

	e.codec = codec
	e.header.Compression = compression

	return nil
}

// Count returns the number of records written.
func (e *Encoder) Count() int {
	return e.count
}

// Encode writes rec as one record. The record must carry all of its samples
// in host byte order.
func (e *Encoder) Encode(rec *trace.Record) error {
	if rec == nil {
		return errs.ErrNilRecord
	}

	if len(rec.SID) == 0 || len(rec.SID) > MaxSIDLength {
		return fmt.Errorf("%w: %q: length must be 1..%d", errs.ErrInvalidSID, rec.SID, MaxSIDLength)
	}

	size := rec.SampleType.Size()
	if size == 0 {
		return fmt.Errorf("%s: %w: %q", rec.SID, errs.ErrUnknownType, byte(rec.SampleType))
	}

	if rec.SampleCount < 0 || rec.NumSamples != rec.SampleCount ||
		int64(len(rec.Samples)) != rec.SampleCount*int64(size) {
		return fmt.Errorf("%s: %w: %d bytes for %d samples",
			rec.SID, errs.ErrPayloadSize, len(rec.Samples), rec.SampleCount)
	}

	if int64(len(rec.Samples)) > MaxPayloadSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds limit", rec.SID, errs.ErrPayloadSize, len(rec.Samples))
	}

	h := e.header
	h.SampleType = rec.SampleType
	h.PubVersion = rec.PubVersion
	h.SIDLength = uint8(len(rec.SID))
	h.Start = int64(rec.Start)
	h.SampleRate = rec.SampleRate
	h.SampleCount = uint32(rec.SampleCount)

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	// The payload is converted to body order in a scratch region so the
	// caller's samples are left untouched.
	body := buf.Extend(len(rec.Samples))
	copy(body, rec.Samples)
	endian.FromNative(body, h.Engine(), size)
	h.Checksum = crc32.ChecksumIEEE(body)

	payload, err := e.codec.Compress(body)
	if err != nil {
		return fmt.Errorf("%s: compressing payload: %w", rec.SID, err)
	}
	h.PayloadSize = uint32(len(payload))

	// Header and identifier go after the scratch region; both regions are
	// written back to back below.
	start := buf.Len()
	buf.B = h.AppendTo(buf.B)
	buf.B = append(buf.B, rec.SID...)
	if _, err := e.w.Write(buf.B[start:]); err != nil {
		return fmt.Errorf("%s: writing record header: %w", rec.SID, err)
	}

	if _, err := e.w.Write(payload); err != nil {
		return fmt.Errorf("%s: writing record payload: %w", rec.SID, err)
	}

	e.count++

	return nil
}

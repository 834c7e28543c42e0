package record

import (
	"bufio"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/arloliu/esync/compress"
	"github.com/arloliu/esync/endian"
	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/internal/options"
	"github.com/arloliu/esync/internal/pool"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

// Reader reads records from a stream.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r      *bufio.Reader
	closer io.Closer
	cfg    readerConfig
	hdr    [HeaderSize]byte
	index  int
}

var _ trace.RecordReader = (*Reader)(nil)

// NewReader creates a Reader over r. Close does not close r.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	cfg := defaultReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Reader{r: bufio.NewReader(r), cfg: *cfg}, nil
}

// Next returns the next record. It returns io.EOF when the stream ends on a
// record boundary and an error wrapping errs.ErrTruncated when it ends inside
// a record.
func (rd *Reader) Next() (*trace.Record, error) {
	if _, err := io.ReadFull(rd.r, rd.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, rd.wrap(readErr(err))
	}
	rd.index++

	var h Header
	if err := h.Parse(rd.hdr[:]); err != nil {
		return nil, rd.wrap(err)
	}

	sid := make([]byte, h.SIDLength)
	if _, err := io.ReadFull(rd.r, sid); err != nil {
		return nil, rd.wrap(readErr(err))
	}

	rec := &trace.Record{
		SID:         string(sid),
		PubVersion:  h.PubVersion,
		Start:       nstime.Time(h.Start),
		SampleRate:  h.SampleRate,
		SampleCount: int64(h.SampleCount),
		SampleType:  h.SampleType,
	}

	if !rd.cfg.unpack {
		if _, err := rd.r.Discard(int(h.PayloadSize)); err != nil {
			return nil, rd.wrap(readErr(err))
		}

		return rec, nil
	}

	samples, err := rd.readPayload(&h)
	if err != nil {
		return nil, rd.wrap(fmt.Errorf("%s: %w", rec.SID, err))
	}

	rec.Samples = samples
	rec.NumSamples = rec.SampleCount

	return rec, nil
}

func (rd *Reader) readPayload(h *Header) ([]byte, error) {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	payload := buf.Extend(int(h.PayloadSize))
	if _, err := io.ReadFull(rd.r, payload); err != nil {
		return nil, readErr(err)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
	}

	size := h.DecodedSize()
	samples, err := codec.Decompress(make([]byte, 0, size), payload)
	if err != nil {
		return nil, err
	}

	if int64(len(samples)) != size {
		return nil, fmt.Errorf("%w: %d bytes for %d %s samples",
			errs.ErrPayloadSize, len(samples), h.SampleCount, h.SampleType)
	}

	if sum := crc32.ChecksumIEEE(samples); sum != h.Checksum {
		return nil, fmt.Errorf("%w: 0x%08X, header says 0x%08X", errs.ErrChecksum, sum, h.Checksum)
	}

	endian.ToNative(samples, h.Engine(), h.SampleType.Size())

	return samples, nil
}

func (rd *Reader) wrap(err error) error {
	return fmt.Errorf("record %d: %w", rd.index, err)
}

func readErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return errs.ErrTruncated
	}

	return err
}

// Close closes the file opened by Decoder.Open. It is a no-op for Readers
// created with NewReader.
func (rd *Reader) Close() error {
	if rd.closer == nil {
		return nil
	}

	err := rd.closer.Close()
	rd.closer = nil

	return err
}

// Decoder opens record files by name.
type Decoder struct {
	opts []ReaderOption
}

// NewDecoder creates a Decoder whose Readers use opts.
func NewDecoder(opts ...ReaderOption) *Decoder {
	return &Decoder{opts: opts}
}

// Open opens the named file and returns a Reader over its records.
func (d *Decoder) Open(name string) (trace.RecordReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	rd, err := NewReader(f, d.opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rd.closer = f

	return rd, nil
}

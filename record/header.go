package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/esync/endian"
	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/format"
)

const (
	// HeaderSize is the size of the fixed record header.
	HeaderSize = 40
	// Magic identifies a record header.
	Magic uint16 = 0xE5C1
	// Version is the container format version written by the Encoder.
	Version uint8 = 1
	// MaxSIDLength is the longest source identifier a record can carry.
	MaxSIDLength = math.MaxUint8
	// MaxPayloadSize bounds both the stored and the decoded payload size.
	MaxPayloadSize = 256 * 1024 * 1024

	flagBigEndian uint8 = 0x01
)

// Header is the fixed part of a record.
type Header struct {
	BigEndian   bool
	Version     uint8
	SampleType  format.SampleType
	Compression format.CompressionType
	PubVersion  uint8
	SIDLength   uint8
	Start       int64
	SampleRate  float64
	SampleCount uint32
	PayloadSize uint32
	Checksum    uint32
}

// Engine returns the byte order of the record body.
func (h *Header) Engine() endian.EndianEngine {
	if h.BigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// DecodedSize returns the size of the uncompressed payload.
func (h *Header) DecodedSize() int64 {
	return int64(h.SampleCount) * int64(h.SampleType.Size())
}

// AppendTo appends the serialized header to b.
func (h *Header) AppendTo(b []byte) []byte {
	engine := h.Engine()

	var flags uint8
	if h.BigEndian {
		flags |= flagBigEndian
	}

	b = binary.LittleEndian.AppendUint16(b, Magic)
	b = append(b, flags, h.Version, byte(h.SampleType), byte(h.Compression), h.PubVersion, h.SIDLength)
	b = engine.AppendUint64(b, uint64(h.Start))
	b = engine.AppendUint64(b, math.Float64bits(h.SampleRate))
	b = engine.AppendUint32(b, h.SampleCount)
	b = engine.AppendUint32(b, h.PayloadSize)
	b = engine.AppendUint32(b, h.Checksum)

	return engine.AppendUint32(b, 0)
}

// Parse decodes and validates a header from data.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if magic := binary.LittleEndian.Uint16(data[0:2]); magic != Magic {
		return fmt.Errorf("%w: bad magic 0x%04X", errs.ErrInvalidHeader, magic)
	}

	h.BigEndian = data[2]&flagBigEndian != 0
	h.Version = data[3]
	h.SampleType = format.SampleType(data[4])
	h.Compression = format.CompressionType(data[5])
	h.PubVersion = data[6]
	h.SIDLength = data[7]

	engine := h.Engine()
	h.Start = int64(engine.Uint64(data[8:16]))
	h.SampleRate = math.Float64frombits(engine.Uint64(data[16:24]))
	h.SampleCount = engine.Uint32(data[24:28])
	h.PayloadSize = engine.Uint32(data[28:32])
	h.Checksum = engine.Uint32(data[32:36])

	return h.validate()
}

func (h *Header) validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidHeader, h.Version)
	}

	if !h.SampleType.Valid() {
		return fmt.Errorf("%w: %q", errs.ErrUnknownType, byte(h.SampleType))
	}

	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: unknown compression 0x%02X", errs.ErrInvalidHeader, uint8(h.Compression))
	}

	if h.SIDLength == 0 {
		return fmt.Errorf("%w: empty source identifier", errs.ErrInvalidHeader)
	}

	if h.PayloadSize > MaxPayloadSize || h.DecodedSize() > MaxPayloadSize {
		return fmt.Errorf("%w: payload of %d bytes for %d samples exceeds limit",
			errs.ErrInvalidHeader, h.PayloadSize, h.SampleCount)
	}

	if math.IsNaN(h.SampleRate) || math.IsInf(h.SampleRate, 0) || h.SampleRate < 0 {
		return fmt.Errorf("%w: invalid sample rate %v", errs.ErrInvalidHeader, h.SampleRate)
	}

	return nil
}

package trace

import (
	"fmt"
	"math"

	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/nstime"
)

// Segment is a run of regularly sampled values with a single sample rate.
type Segment struct {
	// Start is the time of the first sample.
	Start nstime.Time
	// End is the time of the last sample.
	End nstime.Time
	// SampleRate is the nominal rate in samples per second, 0 when not fixed.
	SampleRate float64
	// SampleCount is the number of samples the segment represents.
	SampleCount int64
	// NumSamples is the number of decoded samples held in Samples.
	NumSamples int64
	// SampleType tags the encoding of Samples.
	SampleType format.SampleType
	// Samples holds the decoded values in host byte order, nil when the
	// samples were not decoded.
	Samples []byte
}

// HasData reports whether decoded samples are available.
func (s *Segment) HasData() bool {
	return s.Samples != nil
}

// Validate checks that the sample buffer length agrees with NumSamples.
func (s *Segment) Validate() error {
	if s.Samples == nil {
		return nil
	}

	size := s.SampleType.Size()
	if size == 0 {
		return fmt.Errorf("%w: %q", errs.ErrUnknownType, byte(s.SampleType))
	}

	if int64(len(s.Samples)) != s.NumSamples*int64(size) {
		return fmt.Errorf("%w: %d bytes for %d %s samples",
			errs.ErrSampleBuffer, len(s.Samples), s.NumSamples, s.SampleType)
	}

	return nil
}

// Record is one decoded record handed over by a decoder.
type Record struct {
	SID         string
	PubVersion  uint8
	Start       nstime.Time
	SampleRate  float64
	SampleCount int64
	NumSamples  int64
	SampleType  format.SampleType
	Samples     []byte
}

// End returns the time of the last sample in the record. It equals Start when
// the record has no samples or no fixed rate.
func (r *Record) End() nstime.Time {
	if r.SampleRate <= 0 || r.SampleCount <= 0 {
		return r.Start
	}

	offset := float64(r.SampleCount-1) / r.SampleRate * nstime.Modulus

	return r.Start + nstime.Time(math.Round(offset))
}

func (r *Record) validate() error {
	if r == nil {
		return errs.ErrNilRecord
	}

	seg := Segment{NumSamples: r.NumSamples, SampleType: r.SampleType, Samples: r.Samples}
	if err := seg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", r.SID, err)
	}

	return nil
}

// ID is the bucket of segments for one source identifier and publication version.
type ID struct {
	SID        string
	PubVersion uint8
	// Earliest and Latest bound the segments of this ID.
	Earliest nstime.Time
	Latest   nstime.Time
	Segments []*Segment
}

func (id *ID) updateBounds() {
	if len(id.Segments) == 0 {
		id.Earliest, id.Latest = nstime.Unset, nstime.Unset
		return
	}

	id.Earliest = id.Segments[0].Start
	id.Latest = id.Segments[0].End
	for _, seg := range id.Segments[1:] {
		id.Earliest = min(id.Earliest, seg.Start)
		id.Latest = max(id.Latest, seg.End)
	}
}

// RecordReader yields decoded records in document order.
type RecordReader interface {
	// Next returns the next record, or io.EOF after the last one.
	Next() (*Record, error)
	// Close releases the underlying resources.
	Close() error
}

package compare

import (
	"math"
	"strconv"

	"github.com/arloliu/esync/endian"
	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/internal/hash"
	"github.com/arloliu/esync/internal/options"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

// Outcome classifies the comparison of one pair of segments.
type Outcome uint8

const (
	// NoData means at least one segment of the pair has no decoded samples.
	NoData Outcome = iota
	// TypeMismatch means the segments hold different sample types.
	TypeMismatch
	// CountMismatch means the segments hold different numbers of samples.
	CountMismatch
	// Differ means a sample value differs; Index locates the first one.
	Differ
	// Same means every sample value is equal.
	Same
)

func (o Outcome) String() string {
	switch o {
	case NoData:
		return "no data"
	case TypeMismatch:
		return "sample type mismatch"
	case CountMismatch:
		return "sample count mismatch"
	case Differ:
		return "differ"
	case Same:
		return "same"
	default:
		return "unknown"
	}
}

// Ref identifies one side of a compared pair.
type Ref struct {
	SID        string
	PubVersion uint8
	Start      nstime.Time
	End        nstime.Time
	NumSamples int64
	SampleType format.SampleType
	HasData    bool
	// Fingerprint is the xxHash64 of the sample bytes. It is 0 without data
	// or when All ran without WithFingerprints.
	Fingerprint uint64
}

// Result is the outcome of comparing segment A with segment B.
type Result struct {
	A, B    Ref
	Outcome Outcome
	// Index is the 1-based position of the first differing sample.
	Index int64
	// ValueA and ValueB are the differing values, formatted for their type.
	ValueA, ValueB string
	// Compared is the number of samples found equal when Outcome is Same.
	Compared int64
}

// Report collects the results of a comparison run.
type Report struct {
	// Identical is false when any pair differs in a sample value.
	Identical bool
	Results   []Result
}

// Differences returns the number of pairs whose samples differ.
func (r *Report) Differences() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Outcome == Differ {
			n++
		}
	}

	return n
}

type entry struct {
	ref Ref
	seg *trace.Segment
}

type config struct {
	fingerprints bool
}

// Option configures All.
type Option = options.Option[*config]

// WithFingerprints records the xxHash64 of every segment on its Ref.
func WithFingerprints() Option {
	return options.NoError(func(c *config) {
		c.fingerprints = true
	})
}

// All compares every pair of segments in list.
func All(list *trace.List, opts ...Option) Report {
	report := Report{Identical: true}
	if list == nil {
		return report
	}

	cfg := &config{}
	_ = options.Apply(cfg, opts...)

	entries := make([]entry, 0, list.SegmentCount())
	for id, seg := range list.All() {
		entries = append(entries, entry{ref: newRef(id, seg, cfg.fingerprints), seg: seg})
	}

	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			res := comparePair(entries[i], entries[j])
			if res.Outcome == Differ {
				report.Identical = false
			}
			report.Results = append(report.Results, res)
		}
	}

	return report
}

// newRef describes seg. A buffer that disagrees with NumSamples counts as
// no data.
func newRef(id *trace.ID, seg *trace.Segment, fingerprint bool) Ref {
	ref := Ref{
		SID:        id.SID,
		PubVersion: id.PubVersion,
		Start:      seg.Start,
		End:        seg.End,
		NumSamples: seg.NumSamples,
		SampleType: seg.SampleType,
		HasData:    seg.HasData() && seg.Validate() == nil,
	}
	if ref.HasData && fingerprint {
		ref.Fingerprint = hash.Sum(seg.Samples)
	}

	return ref
}

func comparePair(a, b entry) Result {
	res := Result{A: a.ref, B: b.ref}
	sa, sb := a.seg, b.seg

	switch {
	case !res.A.HasData || !res.B.HasData:
		res.Outcome = NoData
		return res
	case sa.SampleType != sb.SampleType:
		res.Outcome = TypeMismatch
		return res
	case sa.NumSamples != sb.NumSamples:
		res.Outcome = CountMismatch
		return res
	}

	idx, va, vb, ok := firstDifference(sa.SampleType, sa.Samples, sb.Samples, sa.NumSamples)
	if ok {
		res.Outcome = Differ
		res.Index = idx + 1
		res.ValueA, res.ValueB = va, vb

		return res
	}

	res.Outcome = Same
	res.Compared = sa.NumSamples

	return res
}

// firstDifference scans n samples of type st and returns the 0-based index
// and formatted values of the first pair that differs. Floating point
// samples compare by value.
func firstDifference(st format.SampleType, a, b []byte, n int64) (int64, string, string, bool) {
	engine := endian.Native()

	switch st {
	case format.SampleInt32:
		for i := int64(0); i < n; i++ {
			x := int32(engine.Uint32(a[i*4:]))
			y := int32(engine.Uint32(b[i*4:]))
			if x != y {
				return i, strconv.FormatInt(int64(x), 10), strconv.FormatInt(int64(y), 10), true
			}
		}
	case format.SampleFloat32:
		for i := int64(0); i < n; i++ {
			x := math.Float32frombits(engine.Uint32(a[i*4:]))
			y := math.Float32frombits(engine.Uint32(b[i*4:]))
			if x != y {
				return i, formatFloat(float64(x)), formatFloat(float64(y)), true
			}
		}
	case format.SampleFloat64:
		for i := int64(0); i < n; i++ {
			x := math.Float64frombits(engine.Uint64(a[i*8:]))
			y := math.Float64frombits(engine.Uint64(b[i*8:]))
			if x != y {
				return i, formatFloat(x), formatFloat(y), true
			}
		}
	case format.SampleText:
		for i := int64(0); i < n; i++ {
			if a[i] != b[i] {
				return i, string(a[i : i+1]), string(b[i : i+1]), true
			}
		}
	}

	return 0, "", "", false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

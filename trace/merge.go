package trace

import (
	"cmp"
	"slices"

	"github.com/arloliu/esync/nstime"
)

// Add merges rec into the List.
//
// The record joins the end of a segment when it starts one sample period after
// the segment ends, or the start of a segment when it ends one period before
// the segment starts, both within the time tolerance, with a tolerable sample
// rate and the same sample type. A record bridging two segments joins them.
// Otherwise a new segment is inserted in start order.
//
// Add keeps its own copy of the record's samples.
func (l *List) Add(rec *Record, tol Tolerance) error {
	if err := rec.validate(); err != nil {
		return err
	}

	id := l.findOrCreate(rec.SID, rec.PubVersion)
	defer id.updateBounds()

	start, end := rec.Start, rec.End()
	period := Period(rec.SampleRate)
	slack := tol.TimeSlack(period)

	for i, seg := range id.Segments {
		if !joinable(seg, rec, tol) {
			continue
		}

		if within(seg.End+period, start, slack) {
			appendRecord(seg, rec, end)
			id.Segments = coalesce(id.Segments, i, tol)

			return nil
		}

		if within(end+period, seg.Start, slack) {
			prependRecord(seg, rec, start)
			if i > 0 {
				id.Segments = coalesce(id.Segments, i-1, tol)
			}

			return nil
		}
	}

	seg := &Segment{
		Start:       start,
		End:         end,
		SampleRate:  rec.SampleRate,
		SampleCount: rec.SampleCount,
		NumSamples:  rec.NumSamples,
		SampleType:  rec.SampleType,
		Samples:     slices.Clone(rec.Samples),
	}

	pos, _ := slices.BinarySearchFunc(id.Segments, seg, func(a, b *Segment) int {
		return cmp.Compare(a.Start, b.Start)
	})
	id.Segments = slices.Insert(id.Segments, pos, seg)

	return nil
}

func joinable(seg *Segment, rec *Record, tol Tolerance) bool {
	if !tol.RateTolerable(seg.SampleRate, rec.SampleRate) {
		return false
	}

	if seg.HasData() != (rec.Samples != nil) {
		return false
	}

	return !seg.HasData() || seg.SampleType == rec.SampleType
}

func within(a, b, slack nstime.Time) bool {
	d := a - b
	if d < 0 {
		d = -d
	}

	return d <= slack
}

func appendRecord(seg *Segment, rec *Record, end nstime.Time) {
	if rec.Samples != nil {
		seg.Samples = append(seg.Samples, rec.Samples...)
	}
	seg.End = end
	seg.SampleCount += rec.SampleCount
	seg.NumSamples += rec.NumSamples
}

func prependRecord(seg *Segment, rec *Record, start nstime.Time) {
	if rec.Samples != nil {
		buf := make([]byte, 0, len(rec.Samples)+len(seg.Samples))
		buf = append(buf, rec.Samples...)
		seg.Samples = append(buf, seg.Samples...)
	}
	seg.Start = start
	seg.SampleCount += rec.SampleCount
	seg.NumSamples += rec.NumSamples
}

// coalesce joins segs[i+1] into segs[i] when the two are now contiguous.
func coalesce(segs []*Segment, i int, tol Tolerance) []*Segment {
	if i+1 >= len(segs) {
		return segs
	}

	cur, next := segs[i], segs[i+1]
	period := Period(cur.SampleRate)

	if !tol.RateTolerable(cur.SampleRate, next.SampleRate) ||
		cur.HasData() != next.HasData() ||
		(cur.HasData() && cur.SampleType != next.SampleType) ||
		!within(cur.End+period, next.Start, tol.TimeSlack(period)) {
		return segs
	}

	if next.HasData() {
		cur.Samples = append(cur.Samples, next.Samples...)
	}
	cur.End = next.End
	cur.SampleCount += next.SampleCount
	cur.NumSamples += next.NumSamples

	return slices.Delete(segs, i+1, i+2)
}

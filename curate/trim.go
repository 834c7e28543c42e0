package curate

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

// Trimmed reports how many samples Trim removed from each end of a segment.
type Trimmed struct {
	Leading  int64
	Trailing int64
}

// Trim drops the samples of seg that fall before start or after end, either of
// which may be nstime.Unset.
//
// The first kept sample may lie up to the tolerance before start and the last
// kept sample up to the tolerance after end. Only integer and floating point
// segments are trimmed, and only when a sample rate is known. A trim that would
// remove every sample is not performed.
//
// The buffer is reallocated to its new exact size. A buffer inconsistent with
// the sample count is reported as errs.ErrSampleBuffer and seg is left as is.
func Trim(seg *trace.Segment, start, end nstime.Time, timeTol float64) (Trimmed, error) {
	var res Trimmed

	if !seg.SampleType.IsNumeric() {
		return res, nil
	}

	if err := seg.Validate(); err != nil {
		return res, err
	}

	delta, tol := ToleranceFor(seg.SampleRate, timeTol)
	if delta <= 0 {
		return res, nil
	}

	size := int64(seg.SampleType.Size())

	if start.IsSet() && seg.Start < start {
		n := stepsForward(seg.Start, start-tol, delta, seg.NumSamples)
		if n > 0 && n < seg.NumSamples {
			if seg.Samples != nil {
				kept := make([]byte, (seg.NumSamples-n)*size)
				copy(kept, seg.Samples[n*size:])
				seg.Samples = kept
			}

			seg.Start += nstime.FromSeconds(float64(n) / seg.SampleRate)
			seg.NumSamples -= n
			seg.SampleCount -= n
			res.Leading = n
		}
	}

	if end.IsSet() && seg.End > end {
		n := stepsBackward(seg.End, end+tol, delta, seg.NumSamples)
		if n > 0 && n < seg.NumSamples {
			if seg.Samples != nil {
				kept := make([]byte, (seg.NumSamples-n)*size)
				copy(kept, seg.Samples)
				seg.Samples = kept
			}

			seg.End -= nstime.FromSeconds(float64(n) / seg.SampleRate)
			seg.NumSamples -= n
			seg.SampleCount -= n
			res.Trailing = n
		}
	}

	return res, nil
}

// stepsForward counts the whole periods needed to walk from t to at least
// limit. Counting stops at bound, which already means nothing can be trimmed.
func stepsForward(t, limit, delta nstime.Time, bound int64) int64 {
	var n int64
	for t < limit && n < bound {
		t += delta
		n++
	}

	return n
}

// stepsBackward counts the whole periods needed to walk from t back to at most
// limit, stopping at bound.
func stepsBackward(t, limit, delta nstime.Time, bound int64) int64 {
	var n int64
	for t > limit && n < bound {
		t -= delta
		n++
	}

	return n
}

// TrimList trims every segment of list to the window of c. The first error
// aborts the walk: the list must not be reported once a segment is inconsistent.
func TrimList(list *trace.List, c Criteria, timeTol float64, logger *slog.Logger) error {
	if !c.Start.IsSet() && !c.End.IsSet() {
		return nil
	}

	if logger == nil {
		logger = slog.Default()
	}

	for id, seg := range list.All() {
		res, err := Trim(seg, c.Start, c.End, timeTol)
		if err != nil {
			return fmt.Errorf("trimming %s: %w", id.SID, err)
		}

		if res.Leading > 0 {
			logger.Info("trimmed samples from beginning of trace", "sid", id.SID, "count", res.Leading)
		}

		if res.Trailing > 0 {
			logger.Info("trimmed samples from end of trace", "sid", id.SID, "count", res.Trailing)
		}
	}

	list.RefreshBounds()

	return nil
}

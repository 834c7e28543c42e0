package trace

import (
	"math"

	"github.com/arloliu/esync/nstime"
)

const (
	// DeriveTolerance selects a time tolerance of half the nominal sample period.
	DeriveTolerance = -1.0
	// UnsetRateTolerance selects the default relative sample-rate test.
	UnsetRateTolerance = -1.0

	// relativeRateTolerance is the default bound on |1 - a/b| for two rates.
	relativeRateTolerance = 0.0001
)

// Tolerance controls when a record is considered contiguous with a segment.
type Tolerance struct {
	// Time is the permitted timing slack in seconds, or DeriveTolerance.
	Time float64
	// SampleRate is the permitted absolute rate difference, or UnsetRateTolerance.
	SampleRate float64
}

// DefaultTolerance derives the time tolerance from the sample period and
// compares rates relatively.
func DefaultTolerance() Tolerance {
	return Tolerance{Time: DeriveTolerance, SampleRate: UnsetRateTolerance}
}

// TimeSlack returns the time tolerance for a segment with the given nominal period.
// Negative values other than DeriveTolerance mean no slack.
func (t Tolerance) TimeSlack(period nstime.Time) nstime.Time {
	switch {
	case t.Time == DeriveTolerance:
		return period / 2
	case t.Time >= 0:
		return nstime.FromSeconds(t.Time)
	default:
		return 0
	}
}

// RateTolerable reports whether rates a and b are close enough to be joined.
func (t Tolerance) RateTolerable(a, b float64) bool {
	if t.SampleRate >= 0 {
		return math.Abs(a-b) <= t.SampleRate
	}

	if a == b {
		return true
	}

	if b == 0 {
		return false
	}

	return math.Abs(1.0-(a/b)) < relativeRateTolerance
}

// Period returns the nominal sample period for rate, 0 when rate is not positive.
func Period(rate float64) nstime.Time {
	if rate <= 0 {
		return 0
	}

	return nstime.Time(nstime.Modulus / rate)
}

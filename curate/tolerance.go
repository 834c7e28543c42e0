package curate

import (
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

// ToleranceFor returns the nominal sample period for rate and the effective
// time tolerance for the configured timeTol seconds.
//
// A timeTol of trace.DeriveTolerance yields half the period; other negative
// values yield no tolerance. A rate that is not positive has a zero period.
func ToleranceFor(rate, timeTol float64) (delta, tol nstime.Time) {
	delta = trace.Period(rate)

	switch {
	case timeTol == trace.DeriveTolerance:
		tol = nstime.Time(0.5 * float64(delta))
	case timeTol >= 0:
		tol = nstime.FromSeconds(timeTol)
	}

	return delta, tol
}

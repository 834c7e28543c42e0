package curate

import (
	"github.com/arloliu/esync/glob"
	"github.com/arloliu/esync/nstime"
)

// Verdict is the outcome of Criteria.Admit.
type Verdict uint8

const (
	Admitted    Verdict = iota // Admitted means the record passed every test.
	BeforeStart                // BeforeStart means the record ends before the window.
	AfterEnd                   // AfterEnd means the record starts after the window.
	NotMatched                 // NotMatched means the identifier failed the match pattern.
	Rejected                   // Rejected means the identifier matched the reject pattern.
)

func (v Verdict) String() string {
	switch v {
	case Admitted:
		return "admitted"
	case BeforeStart:
		return "starttime"
	case AfterEnd:
		return "endtime"
	case NotMatched:
		return "match"
	case Rejected:
		return "reject"
	default:
		return "unknown"
	}
}

// Criteria selects records by time window and source identifier.
// The zero value of a pattern imposes no constraint; nstime.Unset leaves a
// window edge open.
type Criteria struct {
	Start  nstime.Time
	End    nstime.Time
	Match  string
	Reject string
}

// NewCriteria builds Criteria whose patterns match anywhere in an identifier.
func NewCriteria(start, end nstime.Time, match, reject string) Criteria {
	c := Criteria{Start: start, End: end}
	if match != "" {
		c.Match = glob.Contains(match)
	}
	if reject != "" {
		c.Reject = glob.Contains(reject)
	}

	return c
}

// HasWindow reports whether either window edge is set.
func (c Criteria) HasWindow() bool {
	return c.Start.IsSet() || c.End.IsSet()
}

// Admit decides whether a record spanning [start, end] for identifier id is
// kept. Any overlap with the window is enough; partial overlaps are trimmed
// later.
func (c Criteria) Admit(id string, start, end nstime.Time) Verdict {
	if c.Start.IsSet() && start < c.Start && !(start <= c.Start && end >= c.Start) {
		return BeforeStart
	}

	if c.End.IsSet() && end > c.End && !(start <= c.End && end >= c.End) {
		return AfterEnd
	}

	if c.Match != "" && !glob.Match(id, c.Match) {
		return NotMatched
	}

	if c.Reject != "" && glob.Match(id, c.Reject) {
		return Rejected
	}

	return Admitted
}

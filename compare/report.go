package compare

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Styles holds the color formatters of a written report.
type Styles struct {
	Same   *color.Color
	Differ *color.Color
	Notice *color.Color
	Ref    *color.Color
}

// NewStyles creates report styles. With enabled false every formatter writes
// plain text.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		Same:   color.New(color.FgGreen),
		Differ: color.New(color.Bold, color.FgRed),
		Notice: color.New(color.FgYellow),
		Ref:    color.New(color.FgHiBlue),
	}

	if !enabled {
		s.Same.DisableColor()
		s.Differ.DisableColor()
		s.Notice.DisableColor()
		s.Ref.DisableColor()
	}

	return s
}

// Write renders the report as human-readable text. A nil s writes plain text.
func (r *Report) Write(w io.Writer, s *Styles) error {
	if s == nil {
		s = NewStyles(false)
	}

	bw := bufio.NewWriter(w)

	for i := range r.Results {
		writeResult(bw, s, &r.Results[i])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing comparison report: %w", err)
	}

	return nil
}

func writeResult(w io.Writer, s *Styles, res *Result) {
	switch res.Outcome {
	case NoData:
		for _, ref := range []Ref{res.A, res.B} {
			if !ref.HasData {
				s.Notice.Fprintf(w, "%s, %s, %s :: No data samples\n",
					ref.SID, ref.Start.SEEDOrdinal(), ref.End.SEEDOrdinal())
			}
		}
	case TypeMismatch:
		s.Notice.Fprintf(w, "%s and %s :: Sample type mismatch\n", res.A.SID, res.B.SID)
	case CountMismatch:
		s.Notice.Fprintf(w, "%s (%d) and %s (%d) :: Sample count mismatch\n",
			res.A.SID, res.A.NumSamples, res.B.SID, res.B.NumSamples)
	case Differ:
		s.Differ.Fprintf(w, "Time series are NOT the same, differing at sample %d (%s versus %s)\n",
			res.Index, res.ValueA, res.ValueB)
	case Same:
		s.Same.Fprintf(w, "Time series are the same, %d samples compared\n", res.Compared)
	}

	writeRef(w, s, res.A)
	writeRef(w, s, res.B)
}

func writeRef(w io.Writer, s *Styles, ref Ref) {
	s.Ref.Fprintf(w, "  %s  %s  %s\n", ref.SID, ref.Start.SEEDOrdinal(), ref.End.SEEDOrdinal())
}

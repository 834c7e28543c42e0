package esync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arloliu/esync/compare"
	"github.com/arloliu/esync/curate"
	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/internal/options"
	"github.com/arloliu/esync/listing"
	"github.com/arloliu/esync/record"
	"github.com/arloliu/esync/trace"
)

// skipLogLevel is the verbosity at which every skipped record is logged.
const skipLogLevel = 3

// Result summarizes a run.
type Result struct {
	// Records is the number of records merged into the collection.
	Records int
	// Skipped is the number of records rejected by the selection criteria.
	Skipped int
	// Segments is the number of segments listed.
	Segments int
	// Identical is false when a comparison found differing samples. It is
	// true when no comparison was requested.
	Identical bool
	// Report holds the comparison results, nil without comparison.
	Report *compare.Report
}

// ExitCode returns the process exit status for the result.
func (r Result) ExitCode() int {
	if !r.Identical {
		return ExitMismatch
	}

	return 0
}

// Processor runs the selection, merge, trim, listing and comparison steps.
//
// A Processor is single use and not safe for concurrent use.
type Processor struct {
	settings Settings
	decoder  Decoder
	merger   Merger
	list     *trace.List
	logger   *slog.Logger
	now      func() time.Time

	records int
	skipped int
}

// NewProcessor creates a Processor for settings.
func NewProcessor(settings Settings, opts ...Option) (*Processor, error) {
	p := &Processor{
		settings: settings,
		logger:   slog.Default(),
		now:      time.Now,
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	if p.decoder == nil {
		p.decoder = record.NewDecoder(record.WithUnpackData(settings.UnpackData))
	}

	if p.list == nil {
		if p.merger != nil {
			return nil, fmt.Errorf("%w: a custom merger needs the collection it merges into, set WithCollection", errs.ErrConfig)
		}
		p.list = trace.NewList()
	}

	if p.merger == nil {
		p.merger = p.list
	}

	return p, nil
}

// Collection returns the collection built so far.
func (p *Processor) Collection() *trace.List {
	return p.list
}

// Run reads every configured file and then calls Finish.
func (p *Processor) Run(w io.Writer, styles *compare.Styles) (Result, error) {
	for _, name := range p.settings.Files {
		if err := p.AddFile(name); err != nil {
			return Result{}, err
		}
	}

	return p.Finish(w, styles)
}

// AddFile reads every record of the named input and merges the admitted ones.
// Any decoding error aborts the file.
func (p *Processor) AddFile(name string) (err error) {
	rd, err := p.decoder.Open(name)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", name, err)
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot read %s: %w", name, cerr)
		}
	}()

	crit := p.settings.Criteria

	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("cannot read %s: %w", name, err)
		}

		if verdict := crit.Admit(rec.SID, rec.Start, rec.End()); verdict != curate.Admitted {
			p.skipped++
			if p.settings.Verbose >= skipLogLevel {
				p.logger.Debug("skipping record", "reason", verdict.String(), "sid", rec.SID, "start", rec.Start.SEEDOrdinal())
			}

			continue
		}

		if err := p.merger.Add(rec, p.settings.Tolerance); err != nil {
			return fmt.Errorf("cannot read %s: %w", name, err)
		}
		p.records++
	}
}

// Finish trims the collection to the time window, writes the listing to w
// and, when comparison is enabled, writes the comparison report after it.
// Nothing is written when trimming fails.
func (p *Processor) Finish(w io.Writer, styles *compare.Styles) (Result, error) {
	res := Result{Records: p.records, Skipped: p.skipped, Identical: true}

	if p.settings.Criteria.HasWindow() {
		if err := curate.TrimList(p.list, p.settings.Criteria, p.settings.TrimTolerance, p.logger); err != nil {
			return res, err
		}
	}

	res.Segments = p.list.SegmentCount()

	err := listing.Write(w, p.list,
		listing.WithLabel(p.settings.Label),
		listing.WithNow(p.now),
		listing.WithLogger(p.logger),
	)
	if err != nil {
		return res, err
	}

	if !p.settings.Compare {
		return res, nil
	}

	debug := p.logger.Enabled(context.Background(), slog.LevelDebug)

	var compareOpts []compare.Option
	if debug {
		compareOpts = append(compareOpts, compare.WithFingerprints())
	}

	report := compare.All(p.list, compareOpts...)
	res.Report = &report
	res.Identical = report.Identical

	for i := 0; debug && i < len(report.Results); i++ {
		r := &report.Results[i]
		p.logger.Debug("compared segments", "a", r.A.SID, "b", r.B.SID, "outcome", r.Outcome.String(),
			"fingerprint_a", fmt.Sprintf("%016x", r.A.Fingerprint), "fingerprint_b", fmt.Sprintf("%016x", r.B.Fingerprint))
	}

	if err := report.Write(w, styles); err != nil {
		return res, err
	}

	if !report.Identical {
		p.logger.Info("time series differ", "pairs", report.Differences())
	}

	return res, nil
}

// IsConfigError reports whether err stems from invalid configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, errs.ErrConfig)
}

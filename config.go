package esync

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/esync/curate"
	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/listing"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

// Config holds the user supplied parameters of a run, as read from a
// parameter file or the command line.
type Config struct {
	// DCCLabel is the data center label of the listing header.
	DCCLabel string `yaml:"dcc_label"`
	// Start and End bound the time window; empty means open.
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	// Match and Reject are source identifier patterns, matched as substrings.
	Match  string `yaml:"match"`
	Reject string `yaml:"reject"`
	// TimeTolerance is the timing slack in seconds, -1 for half a sample
	// period. Nil leaves merging at half a period and trimming exact.
	TimeTolerance *float64 `yaml:"time_tolerance"`
	// RateTolerance is the absolute sample-rate slack. Nil selects the
	// relative default.
	RateTolerance *float64 `yaml:"rate_tolerance"`
	Verbose       int      `yaml:"verbose"`
	Compare       bool     `yaml:"compare"`
	// UnpackData controls sample decoding. Without it no digests or
	// comparisons are produced.
	UnpackData bool     `yaml:"unpack_data"`
	Files      []string `yaml:"files"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		DCCLabel:   listing.DefaultLabel,
		UnpackData: true,
	}
}

// LoadConfig reads a YAML parameter file. Fields absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading parameter file: %w", errs.ErrConfig, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing parameter file %s: %w", errs.ErrConfig, path, err)
	}

	return cfg, nil
}

// Settings is the validated, immutable form of a Config.
type Settings struct {
	Label    string
	Criteria curate.Criteria
	// TrimTolerance is the time tolerance in seconds used when trimming, or
	// trace.DeriveTolerance.
	TrimTolerance float64
	// Tolerance is handed to the Merger.
	Tolerance  trace.Tolerance
	Verbose    int
	Compare    bool
	UnpackData bool
	Files      []string
}

// Validate checks c and converts it to Settings.
func (c Config) Validate() (Settings, error) {
	s := Settings{
		Label:         c.DCCLabel,
		TrimTolerance: 0,
		Tolerance:     trace.DefaultTolerance(),
		Verbose:       c.Verbose,
		Compare:       c.Compare,
		UnpackData:    c.UnpackData,
		Files:         append([]string(nil), c.Files...),
	}

	if s.Label == "" {
		s.Label = listing.DefaultLabel
	}

	start, err := parseTime("start", c.Start)
	if err != nil {
		return Settings{}, err
	}

	end, err := parseTime("end", c.End)
	if err != nil {
		return Settings{}, err
	}

	if start.IsSet() && end.IsSet() && start > end {
		return Settings{}, fmt.Errorf("%w: start time %s is after end time %s", errs.ErrConfig, c.Start, c.End)
	}

	s.Criteria = curate.NewCriteria(start, end, c.Match, c.Reject)

	if c.TimeTolerance != nil {
		if !finite(*c.TimeTolerance) {
			return Settings{}, fmt.Errorf("%w: invalid time tolerance %v", errs.ErrConfig, *c.TimeTolerance)
		}
		s.TrimTolerance = *c.TimeTolerance
		s.Tolerance.Time = *c.TimeTolerance
	}

	if c.RateTolerance != nil {
		if !finite(*c.RateTolerance) {
			return Settings{}, fmt.Errorf("%w: invalid sample rate tolerance %v", errs.ErrConfig, *c.RateTolerance)
		}
		s.Tolerance.SampleRate = *c.RateTolerance
	}

	if c.Verbose < 0 {
		return Settings{}, fmt.Errorf("%w: negative verbosity %d", errs.ErrConfig, c.Verbose)
	}

	if len(s.Files) == 0 {
		return Settings{}, fmt.Errorf("%w: %w", errs.ErrConfig, errs.ErrNoInput)
	}

	return s, nil
}

func parseTime(name, value string) (nstime.Time, error) {
	if value == "" {
		return nstime.Unset, nil
	}

	t, err := nstime.Parse(value)
	if err != nil {
		return nstime.Unset, fmt.Errorf("%w: %s time: %w", errs.ErrConfig, name, err)
	}

	return t, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

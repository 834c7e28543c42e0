package esync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "DCC", cfg.DCCLabel)
	require.True(t, cfg.UnpackData)
	require.False(t, cfg.Compare)
	require.Nil(t, cfg.TimeTolerance)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Files = []string{"a.rec"}
	cfg.Start = "2024,001,00:00:10"
	cfg.End = "2024-01-01T00:01:00"
	cfg.Match = "ANMO"
	cfg.Reject = "_L_"

	s, err := cfg.Validate()
	require.NoError(t, err)
	require.Equal(t, "DCC", s.Label)
	require.Equal(t, nstime.MustParse("2024,001,00:00:10"), s.Criteria.Start)
	require.Equal(t, nstime.MustParse("2024,001,00:01:00"), s.Criteria.End)
	require.Equal(t, "*ANMO*", s.Criteria.Match)
	require.Equal(t, "*_L_*", s.Criteria.Reject)
	require.Zero(t, s.TrimTolerance)
	require.Equal(t, trace.DefaultTolerance(), s.Tolerance)
	require.True(t, s.UnpackData)
	require.Equal(t, []string{"a.rec"}, s.Files)
}

func TestConfig_ValidateTolerances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Files = []string{"a.rec"}
	cfg.TimeTolerance = ptr(0.25)
	cfg.RateTolerance = ptr(0.01)

	s, err := cfg.Validate()
	require.NoError(t, err)
	require.InDelta(t, 0.25, s.TrimTolerance, 0)
	require.Equal(t, trace.Tolerance{Time: 0.25, SampleRate: 0.01}, s.Tolerance)

	cfg.TimeTolerance = ptr(trace.DeriveTolerance)
	s, err = cfg.Validate()
	require.NoError(t, err)
	require.Equal(t, trace.DeriveTolerance, s.TrimTolerance)
	require.Equal(t, trace.DeriveTolerance, s.Tolerance.Time)
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"no files", func(c *Config) { c.Files = nil }, errs.ErrNoInput},
		{"bad start", func(c *Config) { c.Start = "yesterday" }, errs.ErrTimeString},
		{"bad end", func(c *Config) { c.End = "2024,400" }, errs.ErrTimeString},
		{"reversed window", func(c *Config) {
			c.Start = "2024,002"
			c.End = "2024,001"
		}, errs.ErrConfig},
		{"negative verbosity", func(c *Config) { c.Verbose = -1 }, errs.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Files = []string{"a.rec"}
			tt.mutate(&cfg)

			_, err := cfg.Validate()
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrConfig)
			require.True(t, IsConfigError(err))
		})
	}
}

func TestConfig_ValidateEmptyLabel(t *testing.T) {
	cfg := Config{Files: []string{"a.rec"}}

	s, err := cfg.Validate()
	require.NoError(t, err)
	require.Equal(t, "DCC", s.Label)
	require.False(t, s.Criteria.HasWindow())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esync.yaml")
	content := `dcc_label: IRISDMC
start: "2024,001"
match: IU_
time_tolerance: -1
compare: true
verbose: 2
files:
  - one.rec
  - two.rec
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "IRISDMC", cfg.DCCLabel)
	require.Equal(t, "2024,001", cfg.Start)
	require.Equal(t, "IU_", cfg.Match)
	require.NotNil(t, cfg.TimeTolerance)
	require.Equal(t, -1.0, *cfg.TimeTolerance)
	require.Nil(t, cfg.RateTolerance)
	require.True(t, cfg.Compare)
	require.True(t, cfg.UnpackData, "absent fields keep defaults")
	require.Equal(t, 2, cfg.Verbose)
	require.Equal(t, []string{"one.rec", "two.rec"}, cfg.Files)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, errs.ErrConfig)
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files: [unterminated"), 0o600))
	_, err = LoadConfig(path)
	require.ErrorIs(t, err, errs.ErrConfig)
}

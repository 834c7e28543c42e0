package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arloliu/esync"
	"github.com/arloliu/esync/compare"
)

// exitError carries a process exit status out of a command without an
// error message.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// syncFlags holds the flag values of the root command.
type syncFlags struct {
	showVersion   bool
	verbose       int
	dccLabel      string
	compare       bool
	start         string
	end           string
	match         string
	reject        string
	timeTolerance float64
	rateTolerance float64
	configPath    string
	noData        bool
	color         string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	f := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "esync [flags] file1 [file2 ...]",
		Short: "esync - Enhanced SYNC listings of sample records",
		Long: `esync reads records from the given files, keeps those that overlap the
requested time window and whose source identifiers pass the match and reject
patterns, and prints an Enhanced SYNC listing of the resulting segments.

An argument of the form @file names a list file holding one input per line.
With --compare every pair of segments is compared sample by sample; the exit
status is 2 when any pair differs.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args, f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.showVersion, "version", "V", false, "Report program version and exit")
	flags.CountVarP(&f.verbose, "verbose", "v", "Be more verbose, repeat for more detail")
	flags.StringVarP(&f.dccLabel, "dcc", "D", "", "DCC label for the listing header (default \"DCC\")")
	flags.BoolVarP(&f.compare, "compare", "C", false, "Compare every pair of segments sample by sample")
	flags.StringVar(&f.start, "ts", "", "Limit to records that contain or start after this time")
	flags.StringVar(&f.end, "te", "", "Limit to records that contain or end before this time")
	flags.StringVarP(&f.match, "match", "m", "", "Limit to source identifiers containing this pattern")
	flags.StringVarP(&f.reject, "reject", "r", "", "Skip source identifiers containing this pattern")
	flags.Float64Var(&f.timeTolerance, "tt", -1, "Time tolerance in seconds, -1 for half a sample period")
	flags.Float64Var(&f.rateTolerance, "rt", 0, "Absolute sample rate tolerance")
	flags.StringVar(&f.configPath, "config", "", "YAML parameter file")
	flags.BoolVar(&f.noData, "no-data", false, "Do not unpack samples, no digests or comparisons")
	flags.StringVar(&f.color, "color", "auto", "Color output: auto, always, never")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newPackCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runSync(cmd *cobra.Command, args []string, f *syncFlags) error {
	if f.showVersion {
		return runVersion(cmd, args)
	}

	cfg, err := buildConfig(cmd, f)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	inputs := cfg.Files
	if len(args) > 0 {
		inputs = args
	}

	cfg.Files, err = expandInputs(inputs, logger)
	if err != nil {
		return err
	}

	settings, err := cfg.Validate()
	if err != nil {
		return err
	}

	styles, err := resolveStyles(f.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	proc, err := esync.NewProcessor(settings, esync.WithLogger(logger))
	if err != nil {
		return err
	}

	res, err := proc.Run(cmd.OutOrStdout(), styles)
	if err != nil {
		return err
	}

	logger.Info("run complete", "records", res.Records, "skipped", res.Skipped, "segments", res.Segments)

	if code := res.ExitCode(); code != 0 {
		return &exitError{code: code, msg: "time series differ"}
	}

	return nil
}

// buildConfig starts from the parameter file, or the defaults without one,
// and applies every flag set on the command line.
func buildConfig(cmd *cobra.Command, f *syncFlags) (esync.Config, error) {
	cfg := esync.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = esync.LoadConfig(f.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if flags.Changed("dcc") {
		cfg.DCCLabel = f.dccLabel
	}
	if flags.Changed("compare") {
		cfg.Compare = f.compare
	}
	if flags.Changed("ts") {
		cfg.Start = f.start
	}
	if flags.Changed("te") {
		cfg.End = f.end
	}
	if flags.Changed("match") {
		cfg.Match = f.match
	}
	if flags.Changed("reject") {
		cfg.Reject = f.reject
	}
	if flags.Changed("tt") {
		v := f.timeTolerance
		cfg.TimeTolerance = &v
	}
	if flags.Changed("rt") {
		v := f.rateTolerance
		cfg.RateTolerance = &v
	}
	if flags.Changed("no-data") {
		cfg.UnpackData = !f.noData
	}

	return cfg, nil
}

// newLogger maps the verbosity count to a level: 0 warnings, 1 progress,
// 2 and above debug detail.
func newLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose >= 2:
		level = slog.LevelDebug
	case verbose == 1:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func resolveStyles(mode string, out io.Writer) (*compare.Styles, error) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		f, ok := out.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	default:
		return nil, fmt.Errorf("invalid --color value %q: must be auto, always or never", mode)
	}

	return compare.NewStyles(!color.NoColor), nil
}

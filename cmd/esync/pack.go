package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/record"
	"github.com/arloliu/esync/trace"
)

// packFields is the number of '|' separated fields of a pack line.
const packFields = 6

type packFlags struct {
	output      string
	compression string
	bigEndian   bool
}

func newPackCmd() *cobra.Command {
	f := &packFlags{}

	cmd := &cobra.Command{
		Use:   "pack <input.txt>",
		Short: "Encode a text description of records into a record file",
		Long: `Pack reads one record per line in the form

    SID|pubversion|start|rate|type|v1,v2,...

and writes them to a record file. The type is one of i, f, d or a. Blank lines
and lines starting with '#' are skipped. An input of "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "Output record file, - for standard output")
	cmd.Flags().StringVar(&f.compression, "compression", "zstd", "Payload compression: none, zstd, s2, lz4")
	cmd.Flags().BoolVar(&f.bigEndian, "big-endian", false, "Write record bodies in big-endian order")

	return cmd
}

func runPack(cmd *cobra.Command, args []string, f *packFlags) error {
	compression, ok := format.ParseCompressionType(f.compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", f.compression)
	}

	in := cmd.InOrStdin()
	if args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		defer file.Close()
		in = file
	}

	out := cmd.OutOrStdout()
	var outFile *os.File
	if f.output != "-" {
		var err error
		if outFile, err = os.Create(f.output); err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}

	w := bufio.NewWriter(out)

	opts := []record.EncoderOption{record.WithCompression(compression)}
	if f.bigEndian {
		opts = append(opts, record.WithBigEndian())
	}

	enc, err := record.NewEncoder(w, opts...)
	if err != nil {
		return err
	}

	if err := packRecords(in, enc); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Packed %d records into %s\n", enc.Count(), f.output)
	}

	return nil
}

func packRecords(r io.Reader, enc *record.Encoder) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), record.MaxPayloadSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parsePackLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	return sc.Err()
}

func parsePackLine(line string) (*trace.Record, error) {
	fields := strings.Split(line, "|")
	if len(fields) != packFields {
		return nil, fmt.Errorf("expected %d fields, got %d", packFields, len(fields))
	}

	pub, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("publication version: %w", err)
	}

	start, err := nstime.Parse(fields[2])
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	rate, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("sample rate: %w", err)
	}

	st, ok := format.ParseSampleType(fields[4])
	if !ok {
		return nil, fmt.Errorf("unknown sample type %q", fields[4])
	}

	var values []string
	if fields[5] != "" {
		values = strings.Split(fields[5], ",")
	}

	samples, err := trace.ParseSamples(st, values)
	if err != nil {
		return nil, err
	}

	n := int64(len(values))

	return &trace.Record{
		SID:         fields[0],
		PubVersion:  uint8(pub),
		Start:       start,
		SampleRate:  rate,
		SampleCount: n,
		NumSamples:  n,
		SampleType:  st,
		Samples:     samples,
	}, nil
}

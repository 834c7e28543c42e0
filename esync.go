// Package esync curates collections of sample segments and reports them as
// Enhanced SYNC listings.
//
// A run reads records from one or more files, keeps the records that overlap
// the requested time window and whose source identifiers pass the match and
// reject patterns, and folds them into a trace.List. Once every file is read,
// segments are trimmed to the window, the listing is written and, on request,
// every pair of segments is compared sample by sample.
//
// # Basic Usage
//
//	cfg := esync.DefaultConfig()
//	cfg.Start = "2024,001"
//	cfg.Files = []string{"ANMO.rec"}
//
//	settings, err := cfg.Validate()
//	if err != nil {
//	    return err
//	}
//
//	proc, err := esync.NewProcessor(settings)
//	if err != nil {
//	    return err
//	}
//
//	res, err := proc.Run(os.Stdout, nil)
//	if err != nil {
//	    return err
//	}
//	os.Exit(res.ExitCode())
//
// # Collaborators
//
// Record decoding and merging are injected. A Decoder opens an input by name
// and yields trace.Records; a Merger folds them into the collection. The
// defaults are the record container decoder and trace.List.Add.
package esync

import (
	"github.com/arloliu/esync/trace"
)

// ExitMismatch is the process exit status of a run whose comparison found
// differing samples.
const ExitMismatch = 2

// RecordReader yields decoded records from one input.
type RecordReader = trace.RecordReader

// Decoder opens inputs by name.
type Decoder interface {
	Open(name string) (RecordReader, error)
}

// Merger folds a record into a collection, joining it to a contiguous
// segment within tol or starting a new one.
type Merger interface {
	Add(rec *trace.Record, tol trace.Tolerance) error
}

var (
	_ Merger = (*trace.List)(nil)
)

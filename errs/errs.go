// Package errs defines the sentinel errors shared by the esync packages.
//
// Callers should match them with errors.Is; packages wrap them with context
// using fmt.Errorf and the %w verb.
package errs

import "errors"

// Configuration errors.
var (
	ErrConfig      = errors.New("invalid configuration")
	ErrTimeString  = errors.New("invalid time string")
	ErrNoInput     = errors.New("no input files were specified")
	ErrInvalidSID  = errors.New("identifier is not a valid FDSN source identifier")
	ErrUnknownType = errors.New("unknown sample type")
)

// Record container errors.
var (
	ErrInvalidHeader     = errors.New("invalid record header")
	ErrInvalidHeaderSize = errors.New("invalid record header size")
	ErrTruncated         = errors.New("truncated record")
	ErrChecksum          = errors.New("record payload checksum mismatch")
	ErrPayloadSize       = errors.New("payload size does not match sample count")
)

// Collection errors.
var (
	// ErrSampleBuffer reports a sample buffer whose length disagrees with its
	// sample count. It is fatal for a run: the segment can no longer be trimmed
	// or listed consistently.
	ErrSampleBuffer = errors.New("inconsistent sample buffer")
	ErrNilRecord    = errors.New("nil record")
)

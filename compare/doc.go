// Package compare checks every pair of segments in a trace collection for
// identical sample values.
//
// All pairs are considered once: a segment is compared with the later
// segments of its own ID and with every segment of every later ID. The scan of
// a pair stops at the first differing sample. Comparison is a diagnostic with
// quadratic cost and is meant for moderate collections.
package compare

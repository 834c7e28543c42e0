// Package listing writes Enhanced SYNC listings of a trace collection.
//
// A listing starts with a header line "LABEL|YYYY,DDD" followed by one line
// per segment:
//
//	NET|STA|LOC|CHAN|START|END||RATE|COUNT|||QUALITY|MD5|||YYYY,DDD
//
// START and END are SEED ordinal times with microsecond precision. QUALITY
// is the legacy quality code derived from the publication version and MD5 is
// the digest of the raw sample bytes, empty when no samples were decoded.
package listing

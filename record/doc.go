// Package record implements a self-describing container of sample records.
//
// A record file is a plain concatenation of records. Each record starts with
// a fixed 40-byte header followed by the source identifier and the payload:
//
//	offset  size  field
//	     0     2  magic 0xE5C1, always little endian
//	     2     1  flags, bit 0 set for a big-endian body
//	     3     1  format version
//	     4     1  sample type ('i', 'f', 'd' or 'a')
//	     5     1  compression type
//	     6     1  publication version
//	     7     1  source identifier length
//	     8     8  start time, nanoseconds since the epoch
//	    16     8  sample rate, IEEE 754 bits
//	    24     4  sample count
//	    28     4  payload length
//	    32     4  CRC-32 (IEEE) of the uncompressed payload
//	    36     4  reserved
//	    40     n  source identifier
//	  40+n     m  payload
//
// All multi-byte fields after the magic use the body byte order. The payload
// holds the sample values in that order, compressed with the codec named in
// the header.
//
// An Encoder writes records to an io.Writer; a Reader reads them back. A
// Decoder opens record files by name and hands out Readers.
package record

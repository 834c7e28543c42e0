package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// TraceKey computes the xxHash64 of a source identifier combined with its
// publication version. Distinct versions of one identifier hash differently.
func TraceKey(sid string, pubVersion uint8) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(sid)
	_, _ = d.Write([]byte{0, pubVersion})

	return d.Sum64()
}

// Sum computes the xxHash64 of a byte slice.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

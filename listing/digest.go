package listing

import (
	"crypto/md5" //nolint:gosec // fixed by the listing format, not a security control
	"encoding/hex"
)

// DigestSize is the length of a digest in bytes.
const DigestSize = md5.Size

// Digest returns the MD5 digest of the raw sample bytes b.
func Digest(b []byte) [DigestSize]byte {
	return md5.Sum(b) //nolint:gosec
}

// DigestHex returns the digest of b as 32 lowercase hexadecimal characters.
func DigestHex(b []byte) string {
	sum := Digest(b)

	return hex.EncodeToString(sum[:])
}

// Package endian provides byte order utilities for sample buffers.
//
// Segment sample buffers are always held in the host's native byte order,
// while record containers may carry either order on disk. EndianEngine combines
// binary.ByteOrder and binary.AppendByteOrder so the same value can read fixed
// header fields and append encoded ones.
//
// # Basic Usage
//
//	engine := endian.Native()
//	v := int32(engine.Uint32(buf[i*4:]))
//
// Converting a big-endian payload to host order in place:
//
//	endian.ToNative(payload, endian.GetBigEndianEngine(), 4)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// Native returns the engine matching the host byte order.
func Native() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsNative reports whether engine uses the host byte order.
func IsNative(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Swap reverses the byte order of every size-byte element of buf in place.
// Sizes of 0 or 1 and trailing partial elements are left untouched.
func Swap(buf []byte, size int) {
	if size < 2 {
		return
	}

	for off := 0; off+size <= len(buf); off += size {
		elem := buf[off : off+size]
		for i, j := 0, size-1; i < j; i, j = i+1, j-1 {
			elem[i], elem[j] = elem[j], elem[i]
		}
	}
}

// ToNative converts buf, encoded with engine, to host byte order in place.
func ToNative(buf []byte, engine EndianEngine, size int) {
	if !IsNative(engine) {
		Swap(buf, size)
	}
}

// FromNative converts buf, held in host byte order, to engine's order in place.
func FromNative(buf []byte, engine EndianEngine, size int) {
	// Swapping is symmetric.
	ToNative(buf, engine, size)
}

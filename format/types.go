package format

type (
	SampleType      uint8
	CompressionType uint8
)

const (
	SampleInt32   SampleType = 'i' // SampleInt32 represents 32-bit signed integer samples.
	SampleFloat32 SampleType = 'f' // SampleFloat32 represents 32-bit IEEE 754 samples.
	SampleFloat64 SampleType = 'd' // SampleFloat64 represents 64-bit IEEE 754 samples.
	SampleText    SampleType = 'a' // SampleText represents single-byte text samples.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Size returns the size in bytes of one sample, or 0 for an unrecognized type.
func (s SampleType) Size() int {
	switch s {
	case SampleInt32, SampleFloat32:
		return 4
	case SampleFloat64:
		return 8
	case SampleText:
		return 1
	default:
		return 0
	}
}

// IsNumeric reports whether samples of this type are integer or floating point values.
func (s SampleType) IsNumeric() bool {
	return s == SampleInt32 || s == SampleFloat32 || s == SampleFloat64
}

// Valid reports whether s is one of the known sample types.
func (s SampleType) Valid() bool {
	return s.Size() > 0
}

func (s SampleType) String() string {
	switch s {
	case SampleInt32:
		return "Int32"
	case SampleFloat32:
		return "Float32"
	case SampleFloat64:
		return "Float64"
	case SampleText:
		return "Text"
	default:
		return "Unknown"
	}
}

// ParseSampleType maps a one-letter tag ("i", "f", "d", "a") to its SampleType.
func ParseSampleType(tag string) (SampleType, bool) {
	if len(tag) != 1 {
		return 0, false
	}

	st := SampleType(tag[0])

	return st, st.Valid()
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-sensitive lowercase name to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

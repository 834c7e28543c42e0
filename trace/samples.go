package trace

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/esync/endian"
	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/format"
)

// AppendInt32 appends values to buf in host byte order.
func AppendInt32(buf []byte, values ...int32) []byte {
	engine := endian.Native()
	for _, v := range values {
		buf = engine.AppendUint32(buf, uint32(v))
	}

	return buf
}

// AppendFloat32 appends values to buf in host byte order.
func AppendFloat32(buf []byte, values ...float32) []byte {
	engine := endian.Native()
	for _, v := range values {
		buf = engine.AppendUint32(buf, math.Float32bits(v))
	}

	return buf
}

// AppendFloat64 appends values to buf in host byte order.
func AppendFloat64(buf []byte, values ...float64) []byte {
	engine := endian.Native()
	for _, v := range values {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// ParseSamples converts textual values to a host-order sample buffer of type st.
// Text samples take one byte per field and expect single-character fields.
func ParseSamples(st format.SampleType, fields []string) ([]byte, error) {
	buf := make([]byte, 0, len(fields)*st.Size())

	for i, f := range fields {
		switch st {
		case format.SampleInt32:
			v, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i+1, err)
			}
			buf = AppendInt32(buf, int32(v))
		case format.SampleFloat32:
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i+1, err)
			}
			buf = AppendFloat32(buf, float32(v))
		case format.SampleFloat64:
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i+1, err)
			}
			buf = AppendFloat64(buf, v)
		case format.SampleText:
			if len(f) != 1 {
				return nil, fmt.Errorf("sample %d: text samples are single characters, got %q", i+1, f)
			}
			buf = append(buf, f[0])
		default:
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownType, byte(st))
		}
	}

	return buf, nil
}

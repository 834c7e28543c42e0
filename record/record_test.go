package record

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esync/errs"
	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/trace"
)

var t0 = nstime.MustParse("2024,001,00:00:00.5")

func testRecords() []*trace.Record {
	return []*trace.Record{
		{
			SID: "FDSN:IU_ANMO_00_B_H_Z", PubVersion: 1, Start: t0, SampleRate: 40,
			SampleCount: 5, NumSamples: 5, SampleType: format.SampleInt32,
			Samples: trace.AppendInt32(nil, 1, -2, 300000, -4000000, 5),
		},
		{
			SID: "FDSN:IU_ANMO_00_L_H_N", PubVersion: 3, Start: t0 + nstime.Modulus, SampleRate: 1,
			SampleCount: 3, NumSamples: 3, SampleType: format.SampleFloat32,
			Samples: trace.AppendFloat32(nil, 0.25, -1.5, 3e10),
		},
		{
			SID: "FDSN:XX_TEST__V_K_1", PubVersion: 2, Start: t0 - 10*nstime.Modulus, SampleRate: 0.1,
			SampleCount: 2, NumSamples: 2, SampleType: format.SampleFloat64,
			Samples: trace.AppendFloat64(nil, 1e-300, 123456.789),
		},
		{
			SID: "FDSN:XX_LOG__L_O_G", PubVersion: 1, Start: t0, SampleRate: 0,
			SampleCount: 11, NumSamples: 11, SampleType: format.SampleText,
			Samples: []byte("hello world"),
		},
	}
}

func encodeAll(t *testing.T, recs []*trace.Record, opts ...EncoderOption) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, opts...)
	require.NoError(t, err)

	for _, rec := range recs {
		require.NoError(t, enc.Encode(rec))
	}
	require.Equal(t, len(recs), enc.Count())

	return buf.Bytes()
}

func readAll(t *testing.T, data []byte, opts ...ReaderOption) []*trace.Record {
	t.Helper()

	rd, err := NewReader(bytes.NewReader(data), opts...)
	require.NoError(t, err)
	defer rd.Close()

	var recs []*trace.Record
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}

	return recs
}

func TestRoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	orders := map[string]EncoderOption{
		"little": WithLittleEndian(),
		"big":    WithBigEndian(),
	}

	for _, compression := range compressions {
		for order, opt := range orders {
			t.Run(compression.String()+"/"+order, func(t *testing.T) {
				want := testRecords()
				data := encodeAll(t, want, opt, WithCompression(compression))

				got := readAll(t, data)
				require.Equal(t, want, got)
			})
		}
	}
}

func TestEncode_DoesNotModifySamples(t *testing.T) {
	recs := testRecords()
	orig := bytes.Clone(recs[0].Samples)

	_ = encodeAll(t, recs[:1], WithBigEndian(), WithCompression(format.CompressionNone))
	require.Equal(t, orig, recs[0].Samples)
}

func TestEncode_Layout(t *testing.T) {
	rec := &trace.Record{
		SID: "FDSN:XX_A__B_H_Z", PubVersion: 4, Start: 1, SampleRate: 2,
		SampleCount: 1, NumSamples: 1, SampleType: format.SampleInt32,
		Samples: trace.AppendInt32(nil, 0x01020304),
	}

	data := encodeAll(t, []*trace.Record{rec}, WithBigEndian(), WithCompression(format.CompressionNone))
	require.Len(t, data, HeaderSize+len(rec.SID)+4)

	require.Equal(t, []byte{0xC1, 0xE5}, data[0:2])
	require.Equal(t, byte(0x01), data[2], "big-endian flag")
	require.Equal(t, Version, data[3])
	require.Equal(t, byte('i'), data[4])
	require.Equal(t, byte(format.CompressionNone), data[5])
	require.Equal(t, byte(4), data[6])
	require.Equal(t, byte(len(rec.SID)), data[7])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, data[8:16])
	require.Equal(t, []byte{0, 0, 0, 1}, data[24:28])
	require.Equal(t, []byte{0, 0, 0, 4}, data[28:32])
	require.Equal(t, rec.SID, string(data[HeaderSize:HeaderSize+len(rec.SID)]))
	require.Equal(t, []byte{1, 2, 3, 4}, data[HeaderSize+len(rec.SID):])
}

func TestHeader_ParseAppendTo(t *testing.T) {
	h := Header{
		BigEndian: true, Version: Version, SampleType: format.SampleFloat64,
		Compression: format.CompressionLZ4, PubVersion: 9, SIDLength: 20,
		Start: int64(t0), SampleRate: 100, SampleCount: 12, PayloadSize: 77, Checksum: 0xDEADBEEF,
	}

	b := h.AppendTo(nil)
	require.Len(t, b, HeaderSize)

	var got Header
	require.NoError(t, got.Parse(b))
	require.Equal(t, h, got)
	require.Equal(t, int64(96), got.DecodedSize())

	require.ErrorIs(t, got.Parse(b[:HeaderSize-1]), errs.ErrInvalidHeaderSize)
}

func TestHeader_ParseInvalid(t *testing.T) {
	valid := Header{
		Version: Version, SampleType: format.SampleInt32, Compression: format.CompressionNone,
		SIDLength: 4, SampleRate: 1, SampleCount: 1, PayloadSize: 4,
	}

	tests := []struct {
		name   string
		mutate func(b []byte)
		want   error
	}{
		{"magic", func(b []byte) { b[0] = 0 }, errs.ErrInvalidHeader},
		{"version", func(b []byte) { b[3] = 2 }, errs.ErrInvalidHeader},
		{"sample type", func(b []byte) { b[4] = 'x' }, errs.ErrUnknownType},
		{"compression", func(b []byte) { b[5] = 0x42 }, errs.ErrInvalidHeader},
		{"empty sid", func(b []byte) { b[7] = 0 }, errs.ErrInvalidHeader},
		{"huge payload", func(b []byte) { b[31] = 0xFF }, errs.ErrInvalidHeader},
		{"negative rate", func(b []byte) { b[23] = 0xBF }, errs.ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid.AppendTo(nil)
			tt.mutate(b)

			var h Header
			require.ErrorIs(t, h.Parse(b), tt.want)
		})
	}
}

func TestReader_NoUnpack(t *testing.T) {
	want := testRecords()
	data := encodeAll(t, want, WithCompression(format.CompressionS2))

	got := readAll(t, data, WithUnpackData(false))
	require.Len(t, got, len(want))

	for i, rec := range got {
		require.Equal(t, want[i].SID, rec.SID)
		require.Equal(t, want[i].Start, rec.Start)
		require.Equal(t, want[i].SampleCount, rec.SampleCount)
		require.Equal(t, want[i].End(), rec.End())
		require.Zero(t, rec.NumSamples)
		require.Nil(t, rec.Samples)
	}
}

func TestReader_Truncated(t *testing.T) {
	data := encodeAll(t, testRecords()[:1], WithCompression(format.CompressionNone))

	for _, cut := range []int{1, HeaderSize - 1, HeaderSize + 3, len(data) - 1} {
		rd, err := NewReader(bytes.NewReader(data[:cut]))
		require.NoError(t, err)

		_, err = rd.Next()
		require.ErrorIs(t, err, errs.ErrTruncated, "cut at %d", cut)
	}

	_, err := NewReader(bytes.NewReader(data[:0]))
	require.NoError(t, err)
	rd, _ := NewReader(bytes.NewReader(nil))
	_, err = rd.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_TruncatedWithoutUnpack(t *testing.T) {
	data := encodeAll(t, testRecords()[:1], WithCompression(format.CompressionNone))

	rd, err := NewReader(bytes.NewReader(data[:len(data)-1]), WithUnpackData(false))
	require.NoError(t, err)

	_, err = rd.Next()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestReader_Checksum(t *testing.T) {
	data := encodeAll(t, testRecords()[:2], WithCompression(format.CompressionNone))
	data[len(data)-1] ^= 0xFF

	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = rd.Next()
	require.NoError(t, err)

	_, err = rd.Next()
	require.ErrorIs(t, err, errs.ErrChecksum)
	require.ErrorContains(t, err, "record 2")
	require.ErrorContains(t, err, "FDSN:IU_ANMO_00_L_H_N")
}

func TestReader_CorruptPayload(t *testing.T) {
	data := encodeAll(t, testRecords()[:1], WithCompression(format.CompressionNone))
	// Claim one more sample than the payload holds.
	data[24]++

	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = rd.Next()
	require.ErrorIs(t, err, errs.ErrPayloadSize)
}

func TestEncoder_Invalid(t *testing.T) {
	valid := func() *trace.Record { return testRecords()[0] }

	tests := []struct {
		name   string
		mutate func(r *trace.Record) *trace.Record
		want   error
	}{
		{"nil", func(*trace.Record) *trace.Record { return nil }, errs.ErrNilRecord},
		{"empty sid", func(r *trace.Record) *trace.Record { r.SID = ""; return r }, errs.ErrInvalidSID},
		{"long sid", func(r *trace.Record) *trace.Record {
			r.SID = string(bytes.Repeat([]byte("x"), MaxSIDLength+1))
			return r
		}, errs.ErrInvalidSID},
		{"unknown type", func(r *trace.Record) *trace.Record { r.SampleType = 'z'; return r }, errs.ErrUnknownType},
		{"short buffer", func(r *trace.Record) *trace.Record { r.Samples = r.Samples[:3]; return r }, errs.ErrPayloadSize},
		{"no samples", func(r *trace.Record) *trace.Record {
			r.Samples, r.NumSamples = nil, 0
			return r
		}, errs.ErrPayloadSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder(io.Discard)
			require.NoError(t, err)
			require.ErrorIs(t, enc.Encode(tt.mutate(valid())), tt.want)
			require.Zero(t, enc.Count())
		})
	}

	_, err := NewEncoder(io.Discard, WithCompression(format.CompressionType(0x33)))
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestDecoder_Open(t *testing.T) {
	want := testRecords()
	path := filepath.Join(t.TempDir(), "records.bin")
	require.NoError(t, os.WriteFile(path, encodeAll(t, want), 0o600))

	rd, err := NewDecoder().Open(path)
	require.NoError(t, err)

	var got []*trace.Record
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, rec)
	}
	require.Equal(t, want, got)
	require.NoError(t, rd.Close())
	require.NoError(t, rd.Close())

	_, err = NewDecoder().Open(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/esync/format"
	"github.com/arloliu/esync/nstime"
	"github.com/arloliu/esync/record"
	"github.com/arloliu/esync/trace"
)

func TestParsePackLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *trace.Record
		wantErr string
	}{
		{
			name: "int32",
			line: "FDSN:IU_ANMO_00_B_H_Z|1|2024,001,00:00:00|20|i|1,-2,3",
			want: &trace.Record{
				SID:         "FDSN:IU_ANMO_00_B_H_Z",
				PubVersion:  1,
				Start:       nstime.MustParse("2024,001"),
				SampleRate:  20,
				SampleCount: 3,
				NumSamples:  3,
				SampleType:  format.SampleInt32,
				Samples:     trace.AppendInt32(nil, 1, -2, 3),
			},
		},
		{
			name: "text",
			line: "FDSN:XX_LOG__L_O_G|2|2024-01-01T00:00:00|0|a|o,k",
			want: &trace.Record{
				SID:         "FDSN:XX_LOG__L_O_G",
				PubVersion:  2,
				Start:       nstime.MustParse("2024,001"),
				SampleCount: 2,
				NumSamples:  2,
				SampleType:  format.SampleText,
				Samples:     []byte("ok"),
			},
		},
		{name: "field count", line: "FDSN:IU_ANMO_00_B_H_Z|1|2024,001|20|i", wantErr: "expected 6 fields"},
		{name: "pubversion", line: "FDSN:IU_ANMO_00_B_H_Z|300|2024,001|20|i|1", wantErr: "publication version"},
		{name: "start", line: "FDSN:IU_ANMO_00_B_H_Z|1|yesterday|20|i|1", wantErr: "start time"},
		{name: "rate", line: "FDSN:IU_ANMO_00_B_H_Z|1|2024,001|fast|i|1", wantErr: "sample rate"},
		{name: "type", line: "FDSN:IU_ANMO_00_B_H_Z|1|2024,001|20|x|1", wantErr: "unknown sample type"},
		{name: "value", line: "FDSN:IU_ANMO_00_B_H_Z|1|2024,001|20|i|1,two", wantErr: "sample 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := parsePackLine(tt.line)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, rec)
		})
	}
}

func TestParsePackLine_NoSamples(t *testing.T) {
	rec, err := parsePackLine("FDSN:IU_ANMO_00_B_H_Z|1|2024,001|20|d|")
	require.NoError(t, err)
	assert.Zero(t, rec.SampleCount)
	assert.Empty(t, rec.Samples)
}

func TestPackCmd_WritesRecordFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "records.txt")
	output := filepath.Join(dir, "records.rec")

	content := strings.Join([]string{
		"# two stations",
		"FDSN:IU_ANMO_00_B_H_Z|1|2024,001,00:00:00|1|i|1,2,3",
		"",
		"FDSN:IU_COLA_00_B_H_Z|1|2024,001,00:00:00|1|d|0.5,1.5",
	}, "\n")
	require.NoError(t, os.WriteFile(input, []byte(content), 0o600))

	cmd := newRootCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"pack", input, "-o", output, "--compression", "s2", "--big-endian"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "Packed 2 records into "+output)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	rd, err := record.NewReader(f)
	require.NoError(t, err)

	rec, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, "FDSN:IU_ANMO_00_B_H_Z", rec.SID)
	assert.Equal(t, trace.AppendInt32(nil, 1, 2, 3), rec.Samples)

	rec, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, "FDSN:IU_COLA_00_B_H_Z", rec.SID)
	assert.Equal(t, trace.AppendFloat64(nil, 0.5, 1.5), rec.Samples)
}

func TestPackCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(input, []byte("FDSN:IU_ANMO_00_B_H_Z|1|2024,001|1|i\n"), 0o600))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"pack", input, "-o", filepath.Join(dir, "out.rec")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	cmd = newRootCmd()
	cmd.SetArgs([]string{"pack", input, "--compression", "brotli"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compression")

	cmd = newRootCmd()
	cmd.SetArgs([]string{"pack"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

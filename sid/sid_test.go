package sid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esync/errs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		id   string
		want NSLC
	}{
		{"FDSN:IU_ANMO_00_B_H_Z", NSLC{"IU", "ANMO", "00", "BHZ"}},
		{"FDSN:XX_TEST__L_H_Z", NSLC{"XX", "TEST", "", "LHZ"}},
		{"FDSN:NET_STA_LOC_B_S_SS", NSLC{"NET", "STA", "LOC", "B_S_SS"}},
		{"FDSN:NET_STA_LOC_CHAN", NSLC{"NET", "STA", "LOC", "CHAN"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := Parse(tt.id)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, id := range []string{"", "IU_ANMO_00_B_H_Z", "FDSN:IU_ANMO", "FDSN:IU_ANMO_00"} {
		_, err := Parse(id)
		require.ErrorIs(t, err, errs.ErrInvalidSID, id)
	}
}

func TestFromNSLC(t *testing.T) {
	require.Equal(t, "FDSN:IU_ANMO_00_B_H_Z", FromNSLC(NSLC{"IU", "ANMO", "00", "BHZ"}))
	require.Equal(t, "FDSN:XX_STA__LONG", FromNSLC(NSLC{"XX", "STA", "", "LONG"}))

	n, err := Parse(FromNSLC(NSLC{"GE", "WLF", "", "HHN"}))
	require.NoError(t, err)
	require.Equal(t, NSLC{"GE", "WLF", "", "HHN"}, n)
}

// Package sid decomposes FDSN source identifiers.
//
// A source identifier has the form "FDSN:NET_STA_LOC_BAND_SOURCE_SUBSOURCE".
// The listing reports it as the four legacy fields network, station, location
// and channel.
package sid

import (
	"fmt"
	"strings"

	"github.com/arloliu/esync/errs"
)

// Namespace is the prefix carried by every FDSN source identifier.
const Namespace = "FDSN:"

// NSLC holds the legacy network, station, location and channel codes.
type NSLC struct {
	Network  string
	Station  string
	Location string
	Channel  string
}

// Parse splits an FDSN source identifier into its NSLC parts.
//
// A channel of the form "B_S_S" with single-character band, source and
// subsource codes is collapsed to the 3-character SEED channel "BSS"; any other
// channel is copied as is.
func Parse(id string) (NSLC, error) {
	rest, ok := strings.CutPrefix(id, Namespace)
	if !ok {
		return NSLC{}, fmt.Errorf("%w: %q: unrecognized namespace", errs.ErrInvalidSID, id)
	}

	parts := strings.SplitN(rest, "_", 4)
	if len(parts) < 4 {
		return NSLC{}, fmt.Errorf("%w: %q", errs.ErrInvalidSID, id)
	}

	return NSLC{
		Network:  parts[0],
		Station:  parts[1],
		Location: parts[2],
		Channel:  seedChannel(parts[3]),
	}, nil
}

// FromNSLC builds a source identifier from legacy codes, expanding a
// 3-character channel to "B_S_S".
func FromNSLC(n NSLC) string {
	ch := n.Channel
	if len(ch) == 3 {
		ch = ch[0:1] + "_" + ch[1:2] + "_" + ch[2:3]
	}

	return Namespace + n.Network + "_" + n.Station + "_" + n.Location + "_" + ch
}

func seedChannel(ch string) string {
	if len(ch) == 5 && ch[1] == '_' && ch[3] == '_' && ch[0] != '_' && ch[2] != '_' && ch[4] != '_' {
		return string([]byte{ch[0], ch[2], ch[4]})
	}

	return ch
}

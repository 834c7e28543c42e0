package listing

import "strconv"

var qualityCodes = map[uint8]string{
	1: "D",
	2: "R",
	3: "Q",
	4: "M",
}

// QualityCode maps a publication version to the legacy SEED quality code.
// Versions outside the table are rendered in decimal and 0 yields "".
func QualityCode(pubVersion uint8) string {
	if pubVersion == 0 {
		return ""
	}

	if code, ok := qualityCodes[pubVersion]; ok {
		return code
	}

	return strconv.Itoa(int(pubVersion))
}

package glob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
		want    bool
	}{
		// literals and anchoring
		{"abc", "abc", true},
		{"abc", "ab", false},
		{"ab", "abc", false},
		{"", "", true},
		{"a", "", false},
		{"ABC", "abc", false},

		// star
		{"FDSN:NET_STA_LOC_B_S_SS", "*STA*", true},
		{"FDSN:NET_STA_LOC_B_S_SS", "*STX*", false},
		{"abc", "*", true},
		{"", "*", true},
		{"", "**", true},
		{"", "*a", false},
		{"ac", "a*c", true},
		{"abbc", "a*c", true},
		{"abcbc", "a*bc", true},
		{"abcd", "a*c", false},
		{"aaa", "a***a", true},
		{"xyz", "*?", true},
		{"mississippi", "*ss*ss*", true},
		{"mississippi", "*ss*ss*ss*", false},

		// question mark
		{"abc", "a?c", true},
		{"abbc", "a?c", false},
		{"ac", "a?c", false},

		// classes
		{"abc", "a[a-z]c", true},
		{"aBc", "a[a-z]c", false},
		{"abc", "a[^b]c", false},
		{"axc", "a[^b]c", true},
		{"a-c", "a[-a-z]c", true},
		{"aac", "a[-a-z]c", true},
		{"a]c", "a[]b]c", true},
		{"abc", "a[]b]c", true},
		{"a-c", "a[b-]c", true},
		{"abc", "a[b-]c", true},
		{"acc", "a[b-]c", false},
		{"azc", "a[z-a]c", true},
		{"aac", "a[z-a]c", true},
		{"amc", "a[z-a]c", false},
		{"B", "[ABC]", true},
		{"D", "[ABC]", false},
		{"D", "[^ABC]", true},
		{"5", "[0-9]", true},
		{"x5", "x[0-35-9]", true},
		{"x4", "x[0-35-9]", false},

		// escapes
		{"a*c", `a\*c`, true},
		{"abc", `a\*c`, false},
		{"a?", `a\?`, true},
		{`a\`, `a\\`, true},
		{"a[", `a\[`, true},

		// malformed
		{"ab", "a[b", false},
		{"ab", "a[", false},
		{"a", `a\`, false},
		{"ab", `a\`, false},
		{"a-", "a[b-", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"~"+tt.pattern, func(t *testing.T) {
			require.Equal(t, tt.want, Match(tt.text, tt.pattern))
		})
	}
}

func TestContains(t *testing.T) {
	require.Equal(t, "*IU_*", Contains("IU_"))
	require.True(t, Match("FDSN:IU_ANMO_00_B_H_Z", Contains("ANMO")))
	require.True(t, Match("FDSN:IU_ANMO_00_B_H_Z", Contains("FDSN:IU_ANMO_00_B_H_Z")))
	require.False(t, Match("FDSN:IU_ANMO_00_B_H_Z", Contains("COLA")))
	require.True(t, Match("FDSN:IU_ANMO_00_B_H_Z", Contains("_[BL]_H_?")))
}

func TestMatch_NeverPanics(t *testing.T) {
	patterns := []string{"[", "[^", "[]", "[a-", "\\", "*[", "*\\", "[^]", "[--]", "***?[", "?*[z-"}
	texts := []string{"", "a", "]", "-", "\\", "abc[]-^"}

	for _, p := range patterns {
		for _, s := range texts {
			require.NotPanics(t, func() { Match(s, p) }, "text %q pattern %q", s, p)
		}
	}
}

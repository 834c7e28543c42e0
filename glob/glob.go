// Package glob implements the shell-style pattern matcher used to select
// source identifiers.
//
// Pattern syntax:
//
//	*        matches zero or more characters
//	?        matches exactly one character
//	[set]    matches one character in set; ranges are written a-z
//	[^set]   matches one character not in set
//	[]set]   a leading ] is a literal member of set
//	[-set]   a leading or trailing - is a literal member of set
//	\c       matches c literally, including * ? [ and \
//
// Matching is byte-wise, case-sensitive and anchored at both ends.
package glob

// Match reports whether text matches pattern in its entirety.
//
// Match never fails: malformed classes and a dangling escape simply do not match.
func Match(text, pattern string) bool {
	s, p := 0, 0

	for p < len(pattern) {
		if s >= len(text) && pattern[p] != '*' {
			return false
		}

		c := pattern[p]
		p++

		switch c {
		case '*':
			for p < len(pattern) && pattern[p] == '*' {
				p++
			}

			if p == len(pattern) {
				return true
			}

			// Fast-forward to the next occurrence of a literal.
			if next := pattern[p]; next != '?' && next != '[' && next != '\\' {
				for s < len(text) && text[s] != next {
					s++
				}
			}

			for ; s < len(text); s++ {
				if Match(text[s:], pattern[p:]) {
					return true
				}
			}

			return false

		case '?':

		case '[':
			ok, next := matchClass(text[s], pattern, p)
			if !ok {
				return false
			}
			p = next

		case '\\':
			if p == len(pattern) {
				return false
			}
			if pattern[p] != text[s] {
				return false
			}
			p++

		default:
			if c != text[s] {
				return false
			}
		}

		s++
	}

	return s == len(text)
}

// Contains wraps pattern with stars so that Match behaves as a substring
// search for it.
func Contains(pattern string) string {
	return "*" + pattern + "*"
}

// matchClass evaluates the class whose body starts at pattern[p] (just after
// the opening bracket) against ch. It returns whether ch satisfies the class
// and the index just past the closing bracket.
//
// A range lo-hi contains lo, hi and everything strictly between; a reversed
// range z-a therefore holds only its two endpoints.
func matchClass(ch byte, pattern string, p int) (bool, int) {
	negate := false
	if p < len(pattern) && pattern[p] == '^' {
		negate = true
		p++
	}

	matched := false
	for !matched && p < len(pattern) {
		c := pattern[p]
		p++

		if p == len(pattern) {
			return false, p
		}

		if pattern[p] == '-' {
			p++
			if p == len(pattern) {
				return false, p
			}

			hi := pattern[p]
			if hi == ']' {
				// trailing hyphen: literal
				matched = ch == c || ch == '-'
				break
			}

			if ch == c || ch == hi || (ch > c && ch < hi) {
				matched = true
			}

			continue
		}

		if c == ch {
			matched = true
		}

		if pattern[p] == ']' {
			break
		}

		if pattern[p] == ch {
			matched = true
		}
	}

	if negate == matched {
		return false, p
	}

	for p < len(pattern) && pattern[p] != ']' {
		p++
	}

	if p == len(pattern) {
		return false, p
	}

	return true, p + 1
}

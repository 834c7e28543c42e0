// Package nstime implements the nanosecond-resolution instants used for
// segment boundaries.
//
// A Time is a count of nanoseconds since the Unix epoch. Sample periods and
// tolerances are expressed in the same unit, so boundary arithmetic stays in
// integers.
package nstime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/esync/errs"
)

// Time is an instant in nanoseconds since 1970-01-01T00:00:00Z.
type Time int64

const (
	// Modulus is the number of Time units per second.
	Modulus = 1_000_000_000

	// Unset marks an instant that was not supplied.
	Unset Time = math.MinInt64
)

// FromSeconds converts a number of seconds to Time units, truncating toward zero.
func FromSeconds(s float64) Time {
	return Time(s * Modulus)
}

// FromTime converts a time.Time to Time.
func FromTime(t time.Time) Time {
	return Time(t.UnixNano())
}

// IsSet reports whether t holds a value.
func (t Time) IsSet() bool {
	return t != Unset
}

// Std returns t as a UTC time.Time.
func (t Time) Std() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// Seconds returns t as fractional seconds since the epoch.
func (t Time) Seconds() float64 {
	return float64(t) / Modulus
}

// SEEDOrdinal formats t as "YYYY,DDD,HH:MM:SS.FFFFFF", microsecond precision
// truncated from the nanosecond value.
func (t Time) SEEDOrdinal() string {
	if !t.IsSet() {
		return ""
	}

	st := t.Std()

	return fmt.Sprintf("%04d,%03d,%02d:%02d:%02d.%06d",
		st.Year(), st.YearDay(), st.Hour(), st.Minute(), st.Second(), st.Nanosecond()/1000)
}

// ISO formats t as "YYYY-MM-DDTHH:MM:SS.FFFFFFFFFZ".
func (t Time) ISO() string {
	if !t.IsSet() {
		return ""
	}

	return t.Std().Format("2006-01-02T15:04:05.000000000Z")
}

func (t Time) String() string {
	return t.ISO()
}

// Parse converts a time string to a Time. Accepted forms:
//
//	YYYY[,DDD[,HH[,MM[,SS[,FFFFFFFFF]]]]]   delimiters any of ",:.T-/ "
//	YYYY-MM-DD[THH:MM:SS[.FFFFFFFFF]][Z]
//	SSSSSSSSSS[.FFFFFF]                      epoch seconds
func Parse(s string) (Time, error) {
	str := strings.TrimSuffix(strings.TrimSpace(s), "Z")
	if str == "" {
		return Unset, fmt.Errorf("%w: empty", errs.ErrTimeString)
	}

	if isEpoch(str) {
		return parseEpoch(s, str)
	}

	if len(str) >= 10 && str[4] == '-' && str[7] == '-' {
		return parseMonthDay(s, str)
	}

	return parseOrdinal(s, str)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// constant initialization.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return t
}

func isEpoch(s string) bool {
	intPart, _, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	if len(intPart) <= 4 {
		return false
	}

	for _, r := range strings.TrimPrefix(s, "-") {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}

	return strings.Count(s, ".") <= 1
}

func parseEpoch(orig, s string) (Time, error) {
	neg := strings.HasPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	secs, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || secs > math.MaxInt64/Modulus-1 {
		return Unset, fmt.Errorf("%w: %q: epoch out of range", errs.ErrTimeString, orig)
	}

	var nsec int
	if hasFrac {
		if nsec, err = parseFraction(frac); err != nil {
			return Unset, fmt.Errorf("%w: %q: %w", errs.ErrTimeString, orig, err)
		}
	}

	t := Time(secs*Modulus + int64(nsec))
	if neg {
		t = -t
	}

	return t, nil
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(",:.T-/ ", r)
}

func parseOrdinal(orig, s string) (Time, error) {
	fields := strings.FieldsFunc(s, isDelimiter)
	if len(fields) == 0 || len(fields) > 6 || len(fields[0]) != 4 {
		return Unset, fmt.Errorf("%w: %q", errs.ErrTimeString, orig)
	}

	// year, day of year, hour, minute, second
	vals := [5]int{0, 1, 0, 0, 0}
	limits := [5][2]int{{1, 9999}, {1, 366}, {0, 23}, {0, 59}, {0, 60}}

	for i := 0; i < len(fields) && i < 5; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil || v < limits[i][0] || v > limits[i][1] {
			return Unset, fmt.Errorf("%w: %q: field %d out of range", errs.ErrTimeString, orig, i+1)
		}
		vals[i] = v
	}

	var nsec int
	if len(fields) == 6 {
		var err error
		if nsec, err = parseFraction(fields[5]); err != nil {
			return Unset, fmt.Errorf("%w: %q: %w", errs.ErrTimeString, orig, err)
		}
	}

	base := time.Date(vals[0], time.January, 1, vals[2], vals[3], vals[4], nsec, time.UTC)
	if vals[1] > 365 && !isLeap(vals[0]) {
		return Unset, fmt.Errorf("%w: %q: day %d in non-leap year", errs.ErrTimeString, orig, vals[1])
	}

	return FromTime(base.AddDate(0, 0, vals[1]-1)), nil
}

func parseMonthDay(orig, s string) (Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FromTime(t), nil
		}
	}

	return Unset, fmt.Errorf("%w: %q", errs.ErrTimeString, orig)
}

// parseFraction interprets up to nine digits as a fraction of a second.
func parseFraction(digits string) (int, error) {
	if len(digits) == 0 || len(digits) > 9 {
		return 0, fmt.Errorf("fraction %q must have 1 to 9 digits", digits)
	}

	v, err := strconv.Atoi(digits)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("fraction %q is not numeric", digits)
	}

	for i := len(digits); i < 9; i++ {
		v *= 10
	}

	return v, nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

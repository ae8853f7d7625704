// Package buf holds bounds-checked helpers for decoders that index into
// untrusted record bytes.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// Digits parses the fixed-width decimal number at b[off:off+n]. Leading and
// trailing spaces are ignored; anything else that is not an ASCII digit, or
// a range outside b, yields ok = false.
func Digits(b []byte, off, n int) (int, bool) {
	s, ok := Slice(b, off, n)
	if !ok {
		return 0, false
	}
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	if len(s) == 0 {
		return 0, false
	}
	v := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		if v > math.MaxInt/10 {
			return 0, false
		}
		next, ok := AddOverflowSafe(v*10, int(c-'0'))
		if !ok {
			return 0, false
		}
		v = next
	}
	return v, true
}

package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(10, 5)
	assert.True(t, ok)
	assert.Equal(t, 15, sum)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	assert.False(t, ok, "adding to MaxInt overflows")
	_, ok = AddOverflowSafe(math.MinInt, -1)
	assert.False(t, ok, "subtracting from MinInt underflows")
}

func TestSliceAndHas(t *testing.T) {
	data := []byte("00714")
	got, ok := Slice(data, 1, 3)
	assert.True(t, ok)
	assert.Equal(t, []byte("071"), got)

	_, ok = Slice(data, 4, 2)
	assert.False(t, ok, "range past end")
	_, ok = Slice(data, -1, 1)
	assert.False(t, ok, "negative offset")
	_, ok = Slice(data, 1, -1)
	assert.False(t, ok, "negative length")
	_, ok = Slice(data, 1, math.MaxInt)
	assert.False(t, ok, "overflowing length")

	assert.True(t, Has(data, 2, 1))
	assert.False(t, Has(data, 2, 4))
}

func TestDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		off  int
		n    int
		want int
		ok   bool
	}{
		{"plain", "00714nam", 0, 5, 714, true},
		{"offset", "xx0042", 2, 4, 42, true},
		{"padded", " 12  ", 0, 5, 12, true},
		{"blank", "     ", 0, 5, 0, false},
		{"letter", "00a14", 0, 5, 0, false},
		{"inner space", "1 2", 0, 3, 0, false},
		{"out of range", "123", 1, 5, 0, false},
		{"overflow", "99999999999999999999999", 0, 23, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Digits([]byte(tt.in), tt.off, tt.n)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

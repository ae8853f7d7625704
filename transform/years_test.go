package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/marckit/internal/testutil"
	"github.com/joshuapare/marckit/record"
)

func TestParseYearSelector(t *testing.T) {
	sel, ok := ParseYearSelector("210d")
	assert.True(t, ok)
	assert.Equal(t, YearSelector{Tag: "210", Code: 'd'}, sel)

	sel, ok = ParseYearSelector("219")
	assert.True(t, ok)
	assert.Equal(t, YearSelector{Tag: "219"}, sel)

	_, ok = ParseYearSelector("21")
	assert.False(t, ok)
	_, ok = ParseYearSelector("210de")
	assert.False(t, ok)
}

func TestExtractYears_WithCode(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []int
	}{
		{"copyright marker", "Paris : cop. 1998", []int{1998}},
		{"glued c marker", "c1975", []int{1975}},
		{"trailing p marker", "1975p", []int{1975}},
		{"symbol marker glued to a word", "Paris©1990", []int{1990}},
		{"letter inside a word is not a marker", "ca1990", nil},
		{"marker letters inside words untouched", "Epic press c1990", []int{1990}},
		{"upper case marker", "DL 2003", []int{2003}},
		{"first year only", "1998-2001", []int{1998}},
		{"five digits are not a year", "12345", nil},
		{"no year", "s.d.", nil},
		{"out of range still kept", "0999", []int{999}},
		{"far future kept on the coded path", "2450", []int{2450}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record.New(testutil.Data("210", "  ", "a", "Paris", "d", tt.value))
			got := ExtractYears(rec, YearSelector{Tag: "210", Code: 'd'})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractYears_WithoutCodeFiltersRange(t *testing.T) {
	rec := record.New(
		testutil.Data("219", "  ", "a", "v.2045"),
		testutil.Data("219", "  ", "a", "Paris", "d", "1995"),
		testutil.Data("219", "  ", "a", "ed. 1650"),
		testutil.Data("219", "  ", "a", "no year here"),
	)
	// The range filter only applies when no subfield code is given.
	assert.Equal(t, []int{1995}, ExtractYears(rec, YearSelector{Tag: "219"}))
	assert.Equal(t, []int{1995}, ExtractYears(rec, YearSelector{Tag: "219", Code: 'd'}))
}

func TestExtractYears_WithoutCodeNotBounded(t *testing.T) {
	rec := record.New(testutil.Data("219", "  ", "a", "ab1999cd"))
	assert.Equal(t, []int{1999}, ExtractYears(rec, YearSelector{Tag: "219"}))
	assert.Empty(t, ExtractYears(rec, YearSelector{Tag: "219", Code: 'a'}))
}

func TestExtractYears_ControlFieldWholeField(t *testing.T) {
	rec := record.New(record.NewControlField("008", "s1985 fr"))
	assert.Equal(t, []int{1985}, ExtractYears(rec, YearSelector{Tag: "008"}))
}

func TestExtractYears_SelectorOrder(t *testing.T) {
	rec := record.New(
		testutil.Data("214", "  ", "d", "2010"),
		testutil.Data("210", "  ", "d", "cop. 1998", "d", "impr. 2001"),
	)
	got := ExtractYears(rec,
		YearSelector{Tag: "210", Code: 'd'},
		YearSelector{Tag: "214", Code: 'd'},
		YearSelector{Tag: "999", Code: 'd'},
	)
	assert.Equal(t, []int{1998, 2001, 2010}, got)
}

func TestYearExtractor_CustomMarkers(t *testing.T) {
	rec := record.New(testutil.Data("210", "  ", "d", "dep1998"))
	assert.Empty(t, NewYearExtractor([]string{}).Extract(rec, YearSelector{Tag: "210", Code: 'd'}))
	assert.Equal(t, []int{1998},
		NewYearExtractor([]string{"dep"}).Extract(rec, YearSelector{Tag: "210", Code: 'd'}))
}

func TestFixedYear(t *testing.T) {
	rec := testutil.SampleRecord()

	y, ok := FixedYear(rec, "100", PublicationYear)
	assert.True(t, ok)
	assert.Equal(t, 1998, y)

	y, ok = FixedYear(rec, "100", CreationYear)
	assert.True(t, ok)
	assert.Equal(t, 2024, y)
}

func TestFixedYear_Missing(t *testing.T) {
	tests := []struct {
		name string
		rec  *record.Record
	}{
		{"no field", record.New()},
		{"no subfields", record.New(testutil.Data("100", "  "))},
		{"too short", record.New(testutil.Data("100", "  ", "a", "2024"))},
		{"not digits", record.New(testutil.Data("100", "  ", "a", "20240101d    "))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FixedYear(tt.rec, "100", PublicationYear)
			assert.False(t, ok)
		})
	}
}

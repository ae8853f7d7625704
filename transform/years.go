package transform

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joshuapare/marckit/record"
)

// Bounds of the plausible range applied to years found without a subfield
// code: MinPlausibleYear <= year < MaxPlausibleYear.
const (
	MinPlausibleYear = 1700
	MaxPlausibleYear = 2100
)

// DefaultDateMarkers are blanked out, case-insensitively, from subfield
// values before looking for a year. Longer markers come first so they win
// over their prefixes. A single-letter marker only counts when it is glued
// to a year at a word edge, as in "c1975" or "1975p".
var DefaultDateMarkers = []string{"copyright", "cop.", "impr.", "d.l.", "dl", "©", "℗", "c", "p"}

var (
	boundedYear = regexp.MustCompile(`\b\d{4}\b`)
	anyYear     = regexp.MustCompile(`\d{4}`)
	leadingYear = regexp.MustCompile(`^\d{4}`)
)

// YearSelector picks where to look for years: every subfield Code of fields
// with Tag, or, when Code is zero, the whole field.
type YearSelector struct {
	Tag  string
	Code byte
}

// ParseYearSelector parses "210d" (tag 210, code d) or "219" (whole field).
func ParseYearSelector(s string) (YearSelector, bool) {
	switch len(s) {
	case record.TagLen:
		return YearSelector{Tag: s}, true
	case record.TagLen + 1:
		return YearSelector{Tag: s[:record.TagLen], Code: s[record.TagLen]}, true
	default:
		return YearSelector{}, false
	}
}

// YearExtractor mines publication years from free-text date subfields.
type YearExtractor struct {
	markers *regexp.Regexp
}

// NewYearExtractor builds an extractor stripping the given markers. Nil
// markers select DefaultDateMarkers.
func NewYearExtractor(markers []string) *YearExtractor {
	if markers == nil {
		markers = DefaultDateMarkers
	}
	e := &YearExtractor{}
	var words, letters []string
	for _, m := range markers {
		if utf8.RuneCountInString(m) == 1 && unicode.IsLetter([]rune(m)[0]) {
			letters = append(letters, regexp.QuoteMeta(m))
			continue
		}
		if m != "" {
			words = append(words, regexp.QuoteMeta(m))
		}
	}
	var alts []string
	if len(words) > 0 {
		alts = append(alts, `(?:`+strings.Join(words, "|")+`)`)
	}
	if len(letters) > 0 {
		l := `(?:` + strings.Join(letters, "|") + `)`
		alts = append(alts, `\b`+l+`(\d)`, `(\d)`+l+`\b`)
	}
	if len(alts) > 0 {
		e.markers = regexp.MustCompile(`(?i)` + strings.Join(alts, "|"))
	}
	return e
}

// markerRepl keeps the digit a glued letter marker was attached to and puts
// a space where the marker was, so a year next to it stays a word of its own.
const markerRepl = "${2} ${1}"

// Extract collects years from rec for each selector, in selector order then
// field order.
//
// With a code, each matching subfield is stripped of date markers and its
// first standalone four-digit run is kept. Without a code, the values of the
// whole field are joined and the first four-digit run anywhere in them is
// kept only if it falls in the plausible range. Fields without a match add
// nothing.
func (e *YearExtractor) Extract(rec *record.Record, selectors ...YearSelector) []int {
	var years []int
	for _, sel := range selectors {
		if sel.Code != 0 {
			for _, f := range rec.DataFields(sel.Tag) {
				for _, v := range f.Values(sel.Code) {
					if y, ok := e.fromText(v); ok {
						years = append(years, y)
					}
				}
			}
			continue
		}
		for _, f := range rec.Get(sel.Tag) {
			y, ok := firstYear(anyYear, fieldText(f))
			if ok && y >= MinPlausibleYear && y < MaxPlausibleYear {
				years = append(years, y)
			}
		}
	}
	return years
}

func (e *YearExtractor) fromText(s string) (int, bool) {
	if e.markers != nil {
		s = e.markers.ReplaceAllString(s, markerRepl)
	}
	return firstYear(boundedYear, s)
}

// ExtractYears runs a default YearExtractor over rec.
func ExtractYears(rec *record.Record, selectors ...YearSelector) []int {
	return NewYearExtractor(nil).Extract(rec, selectors...)
}

// FixedYearKind selects a fixed position in a coded-data subfield.
type FixedYearKind int

const (
	// PublicationYear is read at offset 9.
	PublicationYear FixedYearKind = iota
	// CreationYear is read at offset 0.
	CreationYear
)

// Offset returns the character offset of the year for the kind.
func (k FixedYearKind) Offset() int {
	if k == PublicationYear {
		return 9
	}
	return 0
}

// FixedYear reads a four-digit year at a fixed offset of the first subfield
// of the first data field with tag (the coded general-processing-data field,
// 100 in UNIMARC).
func FixedYear(rec *record.Record, tag string, kind FixedYearKind) (int, bool) {
	fields := rec.DataFields(tag)
	if len(fields) == 0 || fields[0].Len() == 0 {
		return 0, false
	}
	value := fields[0].Subfields()[0].Value
	off := kind.Offset()
	if len(value) < off {
		return 0, false
	}
	return firstYear(leadingYear, value[off:])
}

func firstYear(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindString(s)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

func fieldText(f record.Field) string {
	switch v := f.(type) {
	case *record.ControlField:
		return v.Data
	case *record.DataField:
		subs := v.Subfields()
		parts := make([]string, len(subs))
		for i, sf := range subs {
			parts[i] = sf.Value
		}
		return strings.Join(parts, " ")
	}
	return ""
}

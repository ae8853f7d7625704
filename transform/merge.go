package transform

import (
	"strings"

	"github.com/joshuapare/marckit/record"
)

// MergeAllByTag merges every data field with tag into one.
//
// The subfields of all matching fields are concatenated in encounter order
// and sorted by o (an empty order keeps the concatenation as is). The new
// field takes the indicators of the first matching field, the originals are
// removed and the new field is appended to the end of the record.
//
// When no data field has the tag the record is unchanged and ok is false.
func MergeAllByTag(rec *record.Record, tag string, o Order) (merged *record.DataField, ok bool) {
	fields := rec.DataFields(tag)
	if len(fields) == 0 {
		return nil, false
	}

	var subs []record.Subfield
	for _, f := range fields {
		subs = append(subs, f.Subfields()...)
	}
	first := fields[0].Indicators
	merged = record.NewDataField(tag, first[0], first[1], SortSubfields(subs, o)...)

	for _, f := range fields {
		rec.Remove(f)
	}
	rec.Append(merged)
	return merged, true
}

// MergeSubfields collapses repeated subfields of code in f into a single
// subfield at the position of the first occurrence. Its value is every
// occurrence joined by sep in field order. Fields with fewer than two
// occurrences are left alone. It reports whether f changed.
func MergeSubfields(f *record.DataField, code byte, sep string) bool {
	values := f.Values(code)
	if len(values) < 2 {
		return false
	}
	joined := strings.Join(values, sep)
	subs := f.Subfields()
	out := make([]record.Subfield, 0, len(subs)-len(values)+1)
	placed := false
	for _, sf := range subs {
		if sf.Code != code {
			out = append(out, sf)
			continue
		}
		if !placed {
			out = append(out, record.Subfield{Code: code, Value: joined})
			placed = true
		}
	}
	f.SetSubfields(out)
	return true
}

// MergeSubfieldsByCode applies MergeSubfields to every data field with tag
// and returns how many fields changed.
func MergeSubfieldsByCode(rec *record.Record, tag string, code byte, sep string) int {
	n := 0
	for _, f := range rec.DataFields(tag) {
		if MergeSubfields(f, code, sep) {
			n++
		}
	}
	return n
}

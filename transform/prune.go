package transform

import (
	"regexp"

	"github.com/joshuapare/marckit/record"
)

// PruneEmptySubfields removes every subfield with an empty value from every
// data field and returns how many subfields were removed. Control fields are
// untouched.
func PruneEmptySubfields(rec *record.Record) int {
	removed := 0
	for _, f := range rec.Fields() {
		df, ok := f.(*record.DataField)
		if !ok {
			continue
		}
		subs := df.Subfields()
		kept := subs[:0]
		for _, sf := range subs {
			if sf.Value != "" {
				kept = append(kept, sf)
			}
		}
		if len(kept) != len(subs) {
			removed += len(subs) - len(kept)
			df.SetSubfields(kept)
		}
	}
	return removed
}

// PruneEmptyFields removes control fields with empty data and data fields
// without subfields. It returns how many fields were removed.
func PruneEmptyFields(rec *record.Record) int {
	var empty []record.Field
	for _, f := range rec.Fields() {
		if f.IsEmpty() {
			empty = append(empty, f)
		}
	}
	return rec.RemoveFields(empty...)
}

// DeleteIfAllMatch deletes every data field with tag in which every subfield
// of code matches re at the start of its value. A field without any subfield
// of code is kept when keepIfMissing is true and deleted otherwise. It returns
// how many fields were deleted.
func DeleteIfAllMatch(rec *record.Record, tag string, code byte, re *regexp.Regexp, keepIfMissing bool) int {
	var doomed []record.Field
	for _, f := range rec.DataFields(tag) {
		values := f.Values(code)
		if len(values) == 0 {
			if !keepIfMissing {
				doomed = append(doomed, f)
			}
			continue
		}
		all := true
		for _, v := range values {
			if !matchesAtStart(re, v) {
				all = false
				break
			}
		}
		if all {
			doomed = append(doomed, f)
		}
	}
	return rec.RemoveFields(doomed...)
}

// KeepFirstOccurrence keeps only the first subfield of code in every data
// field with tag. Other subfields keep their positions. It returns how many
// subfields were removed.
func KeepFirstOccurrence(rec *record.Record, tag string, code byte) int {
	removed := 0
	for _, f := range rec.DataFields(tag) {
		if f.Count(code) < 2 {
			continue
		}
		subs := f.Subfields()
		out := make([]record.Subfield, 0, len(subs))
		seen := false
		for _, sf := range subs {
			if sf.Code == code {
				if seen {
					removed++
					continue
				}
				seen = true
			}
			out = append(out, sf)
		}
		f.SetSubfields(out)
	}
	return removed
}

package transform

import (
	"regexp"

	"github.com/joshuapare/marckit/record"
)

// Substitute replaces the value of every subfield of f whose code is in codes
// with the result of a global substitution of re by repl. Other subfields are
// untouched and order is preserved. It returns the new subfield sequence.
func Substitute(f *record.DataField, codes string, re *regexp.Regexp, repl string) []record.Subfield {
	subs := f.Subfields()
	if codes == "" {
		return subs
	}
	for i, sf := range subs {
		if containsCode(codes, sf.Code) {
			subs[i].Value = re.ReplaceAllString(sf.Value, repl)
		}
	}
	f.SetSubfields(subs)
	return subs
}

// SubstituteTag applies Substitute to every data field with tag.
func SubstituteTag(rec *record.Record, tag, codes string, re *regexp.Regexp, repl string) int {
	fields := rec.DataFields(tag)
	for _, f := range fields {
		Substitute(f, codes, re, repl)
	}
	return len(fields)
}

// ReplaceUnmatched replaces the whole value of every subfield of f whose code
// is in codes and whose value does not match re at its start with literal.
// Matching values are left alone. It returns the new subfield sequence.
func ReplaceUnmatched(f *record.DataField, codes string, re *regexp.Regexp, literal string) []record.Subfield {
	subs := f.Subfields()
	if codes == "" {
		return subs
	}
	for i, sf := range subs {
		if containsCode(codes, sf.Code) && !matchesAtStart(re, sf.Value) {
			subs[i].Value = literal
		}
	}
	f.SetSubfields(subs)
	return subs
}

// ReplaceUnmatchedTag applies ReplaceUnmatched to every data field with tag.
func ReplaceUnmatchedTag(rec *record.Record, tag, codes string, re *regexp.Regexp, literal string) int {
	fields := rec.DataFields(tag)
	for _, f := range fields {
		ReplaceUnmatched(f, codes, re, literal)
	}
	return len(fields)
}

// matchesAtStart reports whether re matches s at offset 0. The leftmost match
// starts at 0 whenever any match does.
func matchesAtStart(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

package transform

import (
	"github.com/joshuapare/marckit/record"
)

// AppendPosition inserts a subfield after every existing subfield.
const AppendPosition = 999

// ForceIndicators sets both indicators of every data field with tag. Values
// are not checked against any cataloging standard. It returns how many
// fields were visited.
func ForceIndicators(rec *record.Record, tag string, ind1, ind2 byte) int {
	fields := rec.DataFields(tag)
	for _, f := range fields {
		f.Indicators = [2]byte{ind1, ind2}
	}
	return len(fields)
}

// AddMissingSubfield adds (code, value) at pos to every data field with tag
// that has no subfield of code. Positions past the end append. It returns how
// many fields received the subfield.
func AddMissingSubfield(rec *record.Record, tag string, code byte, value string, pos int) int {
	n := 0
	for _, f := range rec.DataFields(tag) {
		if f.Has(code) {
			continue
		}
		f.InsertSubfield(pos, code, value)
		n++
	}
	return n
}

package transform

import (
	"github.com/joshuapare/marckit/record"
)

// SplitByRepeatedCode splits every data field with tag in which code occurs
// at least twice. Each value of code yields one new field holding the other
// ("carried") subfields in their original order followed by that single
// value. New fields keep the original indicators and are appended to the end
// of the record; the original field is removed. It returns how many fields
// were split.
func SplitByRepeatedCode(rec *record.Record, tag string, code byte) int {
	n := 0
	for _, f := range rec.DataFields(tag) {
		values := f.Values(code)
		if len(values) < 2 {
			continue
		}
		var carried []record.Subfield
		for _, sf := range f.Subfields() {
			if sf.Code != code {
				carried = append(carried, sf)
			}
		}
		for _, v := range values {
			nf := record.NewDataField(tag, f.Indicators[0], f.Indicators[1], carried...)
			nf.AddSubfield(code, v)
			rec.Append(nf)
		}
		rec.Remove(f)
		n++
	}
	return n
}

// SplitMerged re-expands fields that hold several parallel entries merged
// together, such as two codes each repeated N times for N entries.
//
// For each data field with tag, let max be the highest occurrence count of
// any code. Fields where no code repeats are left alone. Otherwise, for each
// index 0..max-1 a new field is built holding, for every code in order of
// first appearance, the value at that index or the first value of the code
// when its list is shorter. New fields keep the original indicators and are
// appended to the end of the record; the original is removed. It returns how
// many fields were split.
func SplitMerged(rec *record.Record, tag string) int {
	n := 0
	for _, f := range rec.DataFields(tag) {
		codes := f.Codes()
		values := make(map[byte][]string, len(codes))
		highest := 1
		for _, c := range codes {
			values[c] = f.Values(c)
			highest = max(highest, len(values[c]))
		}
		if highest <= 1 {
			continue
		}

		for i := 0; i < highest; i++ {
			nf := record.NewDataField(tag, f.Indicators[0], f.Indicators[1])
			for _, c := range codes {
				vs := values[c]
				if i < len(vs) {
					nf.AddSubfield(c, vs[i])
				} else {
					nf.AddSubfield(c, vs[0])
				}
			}
			rec.Append(nf)
		}
		rec.Remove(f)
		n++
	}
	return n
}

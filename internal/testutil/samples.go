package testutil

import "github.com/joshuapare/marckit/record"

// SampleLeader is a well-formed leader for a UTF-8 monograph record. Length
// and base address are recomputed by encoders.
const SampleLeader = "00000nam a2200000   4500"

// SampleRecord returns a small UNIMARC-like record exercising control
// fields, blank indicators, repeated subfields and non-ASCII text.
func SampleRecord() *record.Record {
	rec := record.New(
		record.NewControlField("001", "FRBNF42"),
		record.NewControlField("005", "20240101120000.0"),
		Data("100", "  ", "a", "20240101d1998    m  y0frey50      ba"),
		Data("200", "1 ", "a", "Les misérables", "e", "roman", "f", "Victor Hugo"),
		Data("210", "  ", "a", "Paris", "c", "Hachette", "d", "cop. 1998"),
		Data("700", " 1", "a", "Hugo", "b", "Victor", "4", "070"),
		Data("610", "  ", "a", "Roman", "a", "XIXe siècle", "9", "x"),
	)
	rec.Leader = SampleLeader
	return rec
}

// SampleRecords returns two distinct sample records.
func SampleRecords() []*record.Record {
	second := record.New(
		record.NewControlField("001", "FRBNF43"),
		Data("200", "1 ", "a", "Notre-Dame de Paris"),
		Data("710", "02", "a", "Société des gens de lettres"),
	)
	second.Leader = SampleLeader
	return []*record.Record{SampleRecord(), second}
}

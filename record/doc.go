/*
Package record holds the in-memory model of a bibliographic catalog record.

A Record is an ordered list of fields. A field is either a control field
(tag plus raw positional data) or a data field (tag, two indicators and an
ordered list of subfields). The two variants are distinct types behind the
sealed Field interface, so a field can never carry both data and subfields.

	rec := record.New(
	    record.NewControlField("001", "FRBNF123"),
	    record.NewDataField("245", '1', '0',
	        record.Subfield{Code: 'a', Value: "Title"},
	        record.Subfield{Code: 'b', Value: "subtitle"},
	    ),
	)
	for _, f := range rec.DataFields("245") {
	    fmt.Println(f.Values('a'))
	}

Field order is meaningful: Append always adds to the end of the record and
only an explicit re-sort changes relative order. Subfield slices handed out by
accessors are copies; mutate through SetSubfields, AddSubfield and friends.

The package does not decode or encode any exchange format. See pkg/marc for
reading and writing record streams.
*/
package record

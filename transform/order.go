package transform

import (
	"strings"

	"github.com/joshuapare/marckit/record"
)

// Wildcard separates codes sorted to the front of a field from codes sorted
// to the back.
const Wildcard byte = '*'

// Order is a subfield ordering specification: a sequence of codes with at
// most one Wildcard. Codes before the wildcard (the head) move to the front
// in the given order, codes after it (the tail) move to the back, and every
// other subfield keeps its relative position in between.
type Order []byte

// ParseOrder builds an Order from a compact string such as "9a*8z". Spaces
// and commas are ignored, so "9, a, *, 8, z" is equivalent.
func ParseOrder(s string) Order {
	out := make(Order, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == ',' {
			continue
		}
		out = append(out, s[i])
	}
	return out
}

// String returns the compact form of the order.
func (o Order) String() string {
	return string(o)
}

// split divides the order at the first wildcard. A code listed more than once
// keeps only its first position so no subfield is emitted twice.
func (o Order) split() (head, tail []byte) {
	seen := make(map[byte]bool, len(o))
	inTail := false
	for _, c := range o {
		if c == Wildcard && !inTail {
			inTail = true
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		if inTail {
			tail = append(tail, c)
		} else {
			head = append(head, c)
		}
	}
	return head, tail
}

// SortSubfields returns a new subfield sequence ordered by o. The sort is
// stable and total: every input subfield appears exactly once. Codes of o
// absent from subs contribute nothing.
//
// Example:
//
//	in:    $8 x $a y $z w $9 v $b u
//	order: 9a*8z
//	out:   $9 v $a y $b u $8 x $z w
func SortSubfields(subs []record.Subfield, o Order) []record.Subfield {
	out := make([]record.Subfield, 0, len(subs))
	if len(o) == 0 {
		return append(out, subs...)
	}
	head, tail := o.split()
	listed := make(map[byte]bool, len(head)+len(tail))
	for _, c := range head {
		listed[c] = true
	}
	for _, c := range tail {
		listed[c] = true
	}

	appendCode := func(code byte) {
		for _, sf := range subs {
			if sf.Code == code {
				out = append(out, sf)
			}
		}
	}

	for _, c := range head {
		appendCode(c)
	}
	for _, sf := range subs {
		if !listed[sf.Code] {
			out = append(out, sf)
		}
	}
	for _, c := range tail {
		appendCode(c)
	}
	return out
}

// SortField reorders the subfields of f by o.
func SortField(f *record.DataField, o Order) {
	f.SetSubfields(SortSubfields(f.Subfields(), o))
}

// SortSubfieldsForTag reorders the subfields of every data field with tag and
// returns how many fields were visited.
func SortSubfieldsForTag(rec *record.Record, tag string, o Order) int {
	fields := rec.DataFields(tag)
	for _, f := range fields {
		SortField(f, o)
	}
	return len(fields)
}

// SortFieldsByTag stably sorts the record's fields by tag.
func SortFieldsByTag(rec *record.Record) {
	rec.SortByTag()
}

// containsCode reports whether code is one of the bytes in codes.
func containsCode(codes string, code byte) bool {
	return strings.IndexByte(codes, code) >= 0
}

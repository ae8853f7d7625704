package record

import "strings"

// BlankIndicator is the canonical "no value" indicator.
const BlankIndicator byte = ' '

// TagLen is the fixed width of a field tag.
const TagLen = 3

// Subfield is a (code, value) pair inside a data field. Codes are not unique
// within a field. An empty value is valid.
type Subfield struct {
	Code  byte
	Value string
}

// Field is either a *ControlField or a *DataField.
type Field interface {
	// Tag returns the three character field tag.
	Tag() string
	// IsControl reports whether the field is a control field.
	IsControl() bool
	// IsEmpty reports whether the field carries no content: empty data for a
	// control field, zero subfields for a data field.
	IsEmpty() bool

	sealed()
}

// IsControlTag reports whether tag is in the control field range (00X).
func IsControlTag(tag string) bool {
	return len(tag) == TagLen && strings.HasPrefix(tag, "00")
}

// ControlField holds raw positional data and no subfields or indicators.
type ControlField struct {
	tag  string
	Data string
}

// NewControlField creates a control field.
func NewControlField(tag, data string) *ControlField {
	return &ControlField{tag: tag, Data: data}
}

func (f *ControlField) Tag() string     { return f.tag }
func (f *ControlField) IsControl() bool { return true }
func (f *ControlField) IsEmpty() bool   { return f.Data == "" }
func (f *ControlField) sealed()         {}

// DataField holds two indicators and an ordered, possibly repeating, list of
// subfields. The subfield list is never nil.
type DataField struct {
	tag        string
	Indicators [2]byte
	subfields  []Subfield
}

// NewDataField creates a data field. The subfields are copied.
func NewDataField(tag string, ind1, ind2 byte, subfields ...Subfield) *DataField {
	f := &DataField{tag: tag, Indicators: [2]byte{ind1, ind2}}
	f.SetSubfields(subfields)
	return f
}

func (f *DataField) Tag() string     { return f.tag }
func (f *DataField) IsControl() bool { return false }
func (f *DataField) IsEmpty() bool   { return len(f.subfields) == 0 }
func (f *DataField) sealed()         {}

// Retag changes the field tag. Only tag-family normalization should need it.
func (f *DataField) Retag(tag string) {
	f.tag = tag
}

// Len returns the number of subfields.
func (f *DataField) Len() int {
	return len(f.subfields)
}

// Subfields returns a copy of the subfield list.
func (f *DataField) Subfields() []Subfield {
	out := make([]Subfield, len(f.subfields))
	copy(out, f.subfields)
	return out
}

// SetSubfields replaces the subfield list with a copy of subs. A nil slice
// becomes an empty list.
func (f *DataField) SetSubfields(subs []Subfield) {
	out := make([]Subfield, len(subs))
	copy(out, subs)
	f.subfields = out
}

// Get returns every subfield with the given code, in field order.
func (f *DataField) Get(code byte) []Subfield {
	var out []Subfield
	for _, sf := range f.subfields {
		if sf.Code == code {
			out = append(out, sf)
		}
	}
	return out
}

// Values returns the values of every subfield with the given code.
func (f *DataField) Values(code byte) []string {
	var out []string
	for _, sf := range f.subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

// First returns the value of the first subfield with the given code.
func (f *DataField) First(code byte) (string, bool) {
	for _, sf := range f.subfields {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// Has reports whether the field has at least one subfield with code.
func (f *DataField) Has(code byte) bool {
	return f.Count(code) > 0
}

// Count returns how many subfields carry code.
func (f *DataField) Count(code byte) int {
	n := 0
	for _, sf := range f.subfields {
		if sf.Code == code {
			n++
		}
	}
	return n
}

// Codes returns the distinct subfield codes in order of first appearance.
func (f *DataField) Codes() []byte {
	seen := make(map[byte]bool, len(f.subfields))
	var out []byte
	for _, sf := range f.subfields {
		if !seen[sf.Code] {
			seen[sf.Code] = true
			out = append(out, sf.Code)
		}
	}
	return out
}

// AddSubfield appends a subfield.
func (f *DataField) AddSubfield(code byte, value string) {
	f.subfields = append(f.subfields, Subfield{Code: code, Value: value})
}

// InsertSubfield inserts a subfield at pos. Positions past the end append,
// negative positions insert at the front.
func (f *DataField) InsertSubfield(pos int, code byte, value string) {
	pos = max(0, min(pos, len(f.subfields)))
	out := make([]Subfield, 0, len(f.subfields)+1)
	out = append(out, f.subfields[:pos]...)
	out = append(out, Subfield{Code: code, Value: value})
	out = append(out, f.subfields[pos:]...)
	f.subfields = out
}

// Clone returns a deep copy of the field with the same tag and indicators.
func (f *DataField) Clone() *DataField {
	return NewDataField(f.tag, f.Indicators[0], f.Indicators[1], f.subfields...)
}

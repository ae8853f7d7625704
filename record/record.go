package record

import (
	"slices"
	"sort"
)

// LeaderLen is the fixed length of a record leader.
const LeaderLen = 24

// Record is an ordered sequence of fields plus the leader carried through
// from the exchange format. Operations on a single Record are not safe for
// concurrent use.
type Record struct {
	// Leader is passed through from the decoder to the encoder untouched by
	// the transformation engine. It may be empty for records built in memory.
	Leader string

	fields []Field
}

// New creates a record holding fields in the given order.
func New(fields ...Field) *Record {
	r := &Record{}
	r.SetFields(fields)
	return r
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the field sequence. The fields themselves are
// shared with the record.
func (r *Record) Fields() []Field {
	return slices.Clone(r.fields)
}

// SetFields replaces the field sequence. Nil entries are dropped.
func (r *Record) SetFields(fields []Field) {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f != nil {
			out = append(out, f)
		}
	}
	r.fields = out
}

// Get returns every field whose tag is one of tags, in record order.
func (r *Record) Get(tags ...string) []Field {
	var out []Field
	for _, f := range r.fields {
		if slices.Contains(tags, f.Tag()) {
			out = append(out, f)
		}
	}
	return out
}

// DataFields returns every data field whose tag is one of tags, in record order.
func (r *Record) DataFields(tags ...string) []*DataField {
	var out []*DataField
	for _, f := range r.fields {
		df, ok := f.(*DataField)
		if ok && slices.Contains(tags, df.Tag()) {
			out = append(out, df)
		}
	}
	return out
}

// ControlFields returns every control field with the given tag.
func (r *Record) ControlFields(tag string) []*ControlField {
	var out []*ControlField
	for _, f := range r.fields {
		if cf, ok := f.(*ControlField); ok && cf.Tag() == tag {
			out = append(out, cf)
		}
	}
	return out
}

// Has reports whether at least one field carries tag.
func (r *Record) Has(tag string) bool {
	for _, f := range r.fields {
		if f.Tag() == tag {
			return true
		}
	}
	return false
}

// ControlNumber returns the data of the first 001 field, if any.
func (r *Record) ControlNumber() string {
	if cfs := r.ControlFields("001"); len(cfs) > 0 {
		return cfs[0].Data
	}
	return ""
}

// Append adds fields to the end of the record.
func (r *Record) Append(fields ...Field) {
	for _, f := range fields {
		if f != nil {
			r.fields = append(r.fields, f)
		}
	}
}

// Remove removes the given field instance. Fields are compared by identity.
// It reports whether the field was found.
func (r *Record) Remove(f Field) bool {
	for i, cur := range r.fields {
		if cur == f {
			r.fields = slices.Delete(r.fields, i, i+1)
			return true
		}
	}
	return false
}

// RemoveFields removes every given field instance and returns how many were
// found.
func (r *Record) RemoveFields(fields ...Field) int {
	if len(fields) == 0 {
		return 0
	}
	drop := make(map[Field]bool, len(fields))
	for _, f := range fields {
		drop[f] = true
	}
	before := len(r.fields)
	r.fields = slices.DeleteFunc(r.fields, func(f Field) bool { return drop[f] })
	return before - len(r.fields)
}

// RemoveTag removes every field carrying one of tags and returns how many
// were removed.
func (r *Record) RemoveTag(tags ...string) int {
	before := len(r.fields)
	r.fields = slices.DeleteFunc(r.fields, func(f Field) bool {
		return slices.Contains(tags, f.Tag())
	})
	return before - len(r.fields)
}

// SortByTag stably sorts fields by tag.
func (r *Record) SortByTag() {
	sort.SliceStable(r.fields, func(i, j int) bool {
		return r.fields[i].Tag() < r.fields[j].Tag()
	})
}

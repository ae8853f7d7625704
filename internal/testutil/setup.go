package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/joshuapare/marckit/record"
)

// Subs builds a subfield list from alternating code/value strings. Only the
// first byte of each code is used.
//
// Example:
//
//	testutil.Subs("a", "Title", "b", "subtitle")
func Subs(pairs ...string) []record.Subfield {
	if len(pairs)%2 != 0 {
		panic("testutil: Subs needs code/value pairs")
	}
	out := make([]record.Subfield, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, record.Subfield{Code: pairs[i][0], Value: pairs[i+1]})
	}
	return out
}

// Data builds a data field. inds is the two indicator characters.
//
// Example:
//
//	testutil.Data("245", "10", "a", "Title")
func Data(tag, inds string, pairs ...string) *record.DataField {
	if len(inds) != 2 {
		panic("testutil: indicators must be two characters")
	}
	return record.NewDataField(tag, inds[0], inds[1], Subs(pairs...)...)
}

// Tags returns the tag of every field of rec in order.
func Tags(rec *record.Record) []string {
	out := make([]string, 0, rec.Len())
	for _, f := range rec.Fields() {
		out = append(out, f.Tag())
	}
	return out
}

// Dump logs a deep dump of v, for failure diagnostics.
func Dump(t *testing.T, v any) {
	t.Helper()
	t.Log(spew.Sdump(v))
}

// WriteTemp writes data to a file named name in a per-test temporary
// directory and returns its path.
func WriteTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

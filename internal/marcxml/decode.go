// Package marcxml reads and writes records in the MARCXML slim schema.
//
// Elements are matched by local name, so documents with or without the
// slim namespace (default or prefixed) decode the same way.
package marcxml

import (
	"bytes"
	"errors"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// Namespace is the MARCXML slim namespace written on output.
const Namespace = "http://www.loc.gov/MARC21/slim"

const recordPath = "//*[local-name()='record']"

var (
	leaderExpr   = xpath.MustCompile("./*[local-name()='leader']")
	fieldsExpr   = xpath.MustCompile("./*[local-name()='controlfield' or local-name()='datafield']")
	subfieldExpr = xpath.MustCompile("./*[local-name()='subfield']")
)

// Parse decodes every record element in data. With opts.Tolerant, malformed
// records are skipped and reported; otherwise the first one stops decoding.
// A document that is not well-formed XML fails as a whole.
func Parse(data []byte, opts types.ReadOptions) ([]*record.Record, []error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, []error{types.Wrap(types.ErrKindFormat, err, "marcxml: parse")}
	}
	var (
		recs []*record.Record
		errs []error
	)
	for i, node := range xmlquery.Find(doc, recordPath) {
		rec, err := decodeRecord(node, opts)
		if err != nil {
			errs = append(errs, types.Wrap(types.ErrKindFormat, err, "marcxml: record %d", i+1))
			if !opts.Tolerant {
				return recs, errs
			}
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errs
}

// Reader streams record elements without building the whole document.
type Reader struct {
	sp   *xmlquery.StreamParser
	opts types.ReadOptions
	n    int
	done bool
}

// NewReader creates a streaming Reader over r.
func NewReader(r io.Reader, opts types.ReadOptions) (*Reader, error) {
	sp, err := xmlquery.CreateStreamParser(r, recordPath)
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, err, "marcxml: stream parser")
	}
	return &Reader{sp: sp, opts: opts}, nil
}

// Next returns the next record or io.EOF. An XML syntax error ends the
// stream; a record with bad content fails alone.
func (r *Reader) Next() (*record.Record, error) {
	if r.done {
		return nil, io.EOF
	}
	node, err := r.sp.Read()
	if errors.Is(err, io.EOF) {
		r.done = true
		return nil, io.EOF
	}
	if err != nil {
		r.done = true
		return nil, types.Wrap(types.ErrKindFormat, err, "marcxml: read")
	}
	r.n++
	rec, err := decodeRecord(node, r.opts)
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, err, "marcxml: record %d", r.n)
	}
	return rec, nil
}

// Count returns how many record elements have been read.
func (r *Reader) Count() int {
	return r.n
}

func decodeRecord(node *xmlquery.Node, opts types.ReadOptions) (*record.Record, error) {
	text := func(s string) string {
		if opts.NormalizeNFC {
			return norm.NFC.String(s)
		}
		return s
	}

	rec := record.New()
	if leader := xmlquery.QuerySelector(node, leaderExpr); leader != nil {
		rec.Leader = leader.InnerText()
	}
	for _, el := range xmlquery.QuerySelectorAll(node, fieldsExpr) {
		tag := el.SelectAttr("tag")
		if len(tag) != record.TagLen {
			return nil, errors.New("field element has bad tag " + `"` + tag + `"`)
		}
		if el.Data == "controlfield" {
			rec.Append(record.NewControlField(tag, text(el.InnerText())))
			continue
		}
		f := record.NewDataField(tag, parseIndicator(el.SelectAttr("ind1")), parseIndicator(el.SelectAttr("ind2")))
		for _, sf := range xmlquery.QuerySelectorAll(el, subfieldExpr) {
			code := sf.SelectAttr("code")
			if len(code) != 1 {
				return nil, errors.New("subfield in " + tag + " has bad code " + `"` + code + `"`)
			}
			f.AddSubfield(code[0], text(sf.InnerText()))
		}
		rec.Append(f)
	}
	return rec, nil
}

func parseIndicator(s string) byte {
	if s == "" {
		return record.BlankIndicator
	}
	return s[0]
}

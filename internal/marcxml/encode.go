package marcxml

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"

	"github.com/joshuapare/marckit/record"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>`

// Writer emits a collection element holding one record element per Write.
// Close writes the closing tag; the underlying writer stays open.
type Writer struct {
	bw      *bufio.Writer
	indent  bool
	started bool
	err     error
}

// NewWriter creates a Writer. With indent, elements go on their own lines.
func NewWriter(w io.Writer, indent bool) *Writer {
	return &Writer{bw: bufio.NewWriter(w), indent: indent}
}

// Write emits one record element.
func (w *Writer) Write(rec *record.Record) error {
	w.start()
	w.line(1, "<record>")
	if rec.Leader != "" {
		w.line(2, "<leader>"+escape(rec.Leader)+"</leader>")
	}
	for _, f := range rec.Fields() {
		switch v := f.(type) {
		case *record.ControlField:
			w.line(2, `<controlfield tag="`+escape(v.Tag())+`">`+escape(v.Data)+"</controlfield>")
		case *record.DataField:
			w.line(2, `<datafield tag="`+escape(v.Tag())+`" ind1="`+encodeIndicator(v.Indicators[0])+
				`" ind2="`+encodeIndicator(v.Indicators[1])+`">`)
			for _, sf := range v.Subfields() {
				w.line(3, `<subfield code="`+escape(string(sf.Code))+`">`+escape(sf.Value)+"</subfield>")
			}
			w.line(2, "</datafield>")
		}
	}
	w.line(1, "</record>")
	return w.err
}

// Close ends the collection and flushes. A writer with no records still
// produces an empty collection.
func (w *Writer) Close() error {
	w.start()
	w.line(0, "</collection>")
	if w.err != nil {
		return w.err
	}
	return w.bw.Flush()
}

func (w *Writer) start() {
	if w.started {
		return
	}
	w.started = true
	w.line(0, header)
	w.line(0, `<collection xmlns="`+Namespace+`">`)
}

func (w *Writer) line(depth int, s string) {
	if w.err != nil {
		return
	}
	if w.indent {
		for i := 0; i < depth; i++ {
			w.bw.WriteString("  ")
		}
	}
	_, w.err = w.bw.WriteString(s)
	if w.err == nil && w.indent {
		w.err = w.bw.WriteByte('\n')
	}
}

func encodeIndicator(b byte) string {
	if b == 0 {
		b = record.BlankIndicator
	}
	return escape(string(b))
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

package mrktext

import (
	"bufio"
	"io"
	"strings"

	"github.com/joshuapare/marckit/record"
)

// Marshal renders rec as mnemonic text, one line per field, without the
// separating blank line.
func Marshal(rec *record.Record) string {
	var b strings.Builder
	if rec.Leader != "" {
		writeLine(&b, LeaderTag, blank(rec.Leader))
	}
	for _, f := range rec.Fields() {
		writeLine(&b, f.Tag(), fieldContent(f))
	}
	return b.String()
}

func writeLine(b *strings.Builder, tag, content string) {
	b.WriteString(LinePrefix)
	b.WriteString(tag)
	b.WriteString(TagSeparator)
	b.WriteString(content)
	b.WriteString(LF)
}

func fieldContent(f record.Field) string {
	switch v := f.(type) {
	case *record.ControlField:
		return blank(v.Data)
	case *record.DataField:
		var b strings.Builder
		for _, ind := range v.Indicators {
			if ind == record.BlankIndicator || ind == 0 {
				ind = BlankMark
			}
			b.WriteByte(ind)
		}
		for _, sf := range v.Subfields() {
			b.WriteByte(SubfieldMarker)
			b.WriteByte(sf.Code)
			b.WriteString(escapeValue(sf.Value))
		}
		return b.String()
	}
	return ""
}

// Writer emits records separated by blank lines.
type Writer struct {
	bw   *bufio.Writer
	crlf bool
}

// NewWriter creates a Writer. With crlf, lines end in CRLF.
func NewWriter(w io.Writer, crlf bool) *Writer {
	return &Writer{bw: bufio.NewWriter(w), crlf: crlf}
}

// Write emits one record followed by a blank line.
func (w *Writer) Write(rec *record.Record) error {
	text := Marshal(rec) + LF
	if w.crlf {
		text = strings.ReplaceAll(text, LF, CRLF)
	}
	_, err := w.bw.WriteString(text)
	return err
}

// Close flushes buffered output. The underlying writer is not closed.
func (w *Writer) Close() error {
	return w.bw.Flush()
}

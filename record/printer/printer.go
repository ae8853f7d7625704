package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/marckit/record"
)

const (
	// DefaultBlankIndicator stands in for a blank indicator in text output.
	DefaultBlankIndicator = '\\'

	// SubfieldMarker precedes each subfield code in text output.
	SubfieldMarker = "$"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one line per field: TAG IND1IND2$avalue$bvalue.
	FormatText Format = "text"

	// FormatJSON outputs one JSON object per record.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// BlankIndicator replaces blank indicators in text output.
	// Default: '\'
	BlankIndicator byte

	// ShowLeader prints the leader before the fields when it is set.
	// Default: false
	ShowLeader bool

	// Tags restricts output to fields with these tags. Empty means all.
	Tags []string
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		BlankIndicator: DefaultBlankIndicator,
	}
}

// Printer writes debug renderings of records.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintRecord(rec)
func New(w io.Writer, opts Options) *Printer {
	if opts.BlankIndicator == 0 {
		opts.BlankIndicator = DefaultBlankIndicator
	}
	return &Printer{writer: w, opts: opts}
}

// PrintRecord prints one record. Text records end with a blank line so a
// stream of records stays readable.
func (p *Printer) PrintRecord(rec *record.Record) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printRecordJSON(rec)
	case FormatText, "":
		return p.printRecordText(rec)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// PrintField prints a single field in text form.
func (p *Printer) PrintField(f record.Field) error {
	_, err := fmt.Fprintln(p.writer, fieldText(f, p.opts.BlankIndicator))
	return err
}

func (p *Printer) wants(f record.Field) bool {
	if len(p.opts.Tags) == 0 {
		return true
	}
	for _, t := range p.opts.Tags {
		if t == f.Tag() {
			return true
		}
	}
	return false
}

// FieldString renders a field as TAG IND1IND2$code1value1$code2value2 with
// blank indicators shown as '\'. Control fields render as TAG data.
func FieldString(f record.Field) string {
	return fieldText(f, DefaultBlankIndicator)
}

// RecordString renders every field of rec, one per line, in field order.
func RecordString(rec *record.Record) string {
	lines := make([]string, 0, rec.Len())
	for _, f := range rec.Fields() {
		lines = append(lines, FieldString(f))
	}
	return strings.Join(lines, "\n")
}

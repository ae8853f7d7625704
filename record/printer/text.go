package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/marckit/record"
)

func (p *Printer) printRecordText(rec *record.Record) error {
	if p.opts.ShowLeader && rec.Leader != "" {
		if _, err := fmt.Fprintf(p.writer, "LDR %s\n", rec.Leader); err != nil {
			return err
		}
	}
	for _, f := range rec.Fields() {
		if !p.wants(f) {
			continue
		}
		if _, err := fmt.Fprintln(p.writer, fieldText(f, p.opts.BlankIndicator)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.writer)
	return err
}

func fieldText(f record.Field, blank byte) string {
	var b strings.Builder
	b.WriteString(f.Tag())
	b.WriteByte(' ')
	switch v := f.(type) {
	case *record.ControlField:
		b.WriteString(v.Data)
	case *record.DataField:
		for _, ind := range v.Indicators {
			if ind == record.BlankIndicator || ind == 0 {
				ind = blank
			}
			b.WriteByte(ind)
		}
		for _, sf := range v.Subfields() {
			b.WriteString(SubfieldMarker)
			b.WriteByte(sf.Code)
			b.WriteString(sf.Value)
		}
	}
	return b.String()
}

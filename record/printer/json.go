package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/marckit/record"
)

type jsonRecord struct {
	Leader string      `json:"leader,omitempty"`
	Fields []jsonField `json:"fields"`
}

type jsonField struct {
	Tag        string         `json:"tag"`
	Data       *string        `json:"data,omitempty"`
	Indicators string         `json:"indicators,omitempty"`
	Subfields  []jsonSubfield `json:"subfields,omitempty"`
}

type jsonSubfield struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// printRecordJSON prints a record as a single JSON line.
func (p *Printer) printRecordJSON(rec *record.Record) error {
	out := jsonRecord{Fields: []jsonField{}}
	if p.opts.ShowLeader {
		out.Leader = rec.Leader
	}
	for _, f := range rec.Fields() {
		if !p.wants(f) {
			continue
		}
		out.Fields = append(out.Fields, toJSONField(f))
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

func toJSONField(f record.Field) jsonField {
	jf := jsonField{Tag: f.Tag()}
	switch v := f.(type) {
	case *record.ControlField:
		data := v.Data
		jf.Data = &data
	case *record.DataField:
		jf.Indicators = string(v.Indicators[:])
		jf.Subfields = make([]jsonSubfield, 0, v.Len())
		for _, sf := range v.Subfields() {
			jf.Subfields = append(jf.Subfields, jsonSubfield{Code: string(sf.Code), Value: sf.Value})
		}
	}
	return jf
}

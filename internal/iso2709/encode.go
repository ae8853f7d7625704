package iso2709

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// Encode serializes rec. Record length, base address, coding scheme,
// indicator count, subfield code length and entry map in the leader are
// recomputed; every other leader position comes from rec.Leader.
func Encode(rec *record.Record) ([]byte, error) {
	fields := rec.Fields()
	var (
		dir  bytes.Buffer
		body bytes.Buffer
	)
	for _, f := range fields {
		tag := f.Tag()
		if len(tag) != EntryTagLen {
			return nil, types.Errorf(types.ErrKindFormat, "iso2709: tag %q is not %d characters", tag, EntryTagLen)
		}
		start := body.Len()
		encodeField(&body, f)
		length := body.Len() - start
		if length > MaxFieldLen {
			return nil, types.Errorf(types.ErrKindUnsupported, "iso2709: field %s is %d bytes, limit %d", tag, length, MaxFieldLen)
		}
		fmt.Fprintf(&dir, "%s%04d%05d", tag, length, start)
	}
	dir.WriteByte(FieldTerminator)

	base := LeaderLen + dir.Len()
	total := base + body.Len() + 1
	if total > MaxRecordLen {
		return nil, types.Errorf(types.ErrKindUnsupported, "iso2709: record is %d bytes, limit %d", total, MaxRecordLen)
	}

	out := make([]byte, 0, total)
	out = append(out, buildLeader(rec.Leader, total, base)...)
	out = append(out, dir.Bytes()...)
	out = append(out, body.Bytes()...)
	out = append(out, RecordTerminator)
	return out, nil
}

func encodeField(buf *bytes.Buffer, f record.Field) {
	switch v := f.(type) {
	case *record.ControlField:
		buf.WriteString(v.Data)
	case *record.DataField:
		for _, ind := range v.Indicators {
			if ind == 0 {
				ind = record.BlankIndicator
			}
			buf.WriteByte(ind)
		}
		for _, sf := range v.Subfields() {
			buf.WriteByte(SubfieldDelimiter)
			buf.WriteByte(sf.Code)
			buf.WriteString(sf.Value)
		}
	}
	buf.WriteByte(FieldTerminator)
}

func buildLeader(src string, total, base int) []byte {
	leader := []byte(DefaultLeader)
	if len(src) == LeaderLen {
		leader = []byte(src)
	}
	copy(leader[0:RecordLengthLen], fmt.Sprintf("%05d", total))
	leader[CodingSchemeOffset] = UnicodeCodingScheme
	leader[IndicatorCountOffset] = '2'
	leader[SubfieldCodeLenOffset] = '2'
	copy(leader[BaseAddressOffset:BaseAddressOffset+BaseAddressLen], fmt.Sprintf("%05d", base))
	copy(leader[EntryMapOffset:], EntryMap)
	return leader
}

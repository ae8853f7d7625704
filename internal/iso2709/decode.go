package iso2709

import (
	"bytes"

	"github.com/joshuapare/marckit/internal/buf"
	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// Decode parses a single record. data may include the trailing record
// terminator. Leader length and base address are trusted only as far as
// they stay inside data.
func Decode(data []byte, opts types.ReadOptions) (*record.Record, error) {
	data = bytes.TrimSuffix(data, []byte{RecordTerminator})
	if !buf.Has(data, 0, LeaderLen) {
		return nil, types.Errorf(types.ErrKindFormat, "iso2709: record shorter than leader (%d bytes)", len(data))
	}
	leader := data[:LeaderLen]

	base, ok := buf.Digits(leader, BaseAddressOffset, BaseAddressLen)
	if !ok {
		return nil, types.Errorf(types.ErrKindFormat, "iso2709: bad base address %q",
			leader[BaseAddressOffset:BaseAddressOffset+BaseAddressLen])
	}
	if base <= LeaderLen || base > len(data) {
		return nil, types.Errorf(types.ErrKindCorrupt, "iso2709: base address %d outside record of %d bytes", base, len(data))
	}

	// Directory runs from the leader to the field terminator before base.
	dir := data[LeaderLen:base]
	if end := bytes.IndexByte(dir, FieldTerminator); end >= 0 {
		dir = dir[:end]
	}
	if len(dir)%EntryLen != 0 {
		return nil, types.Errorf(types.ErrKindFormat, "iso2709: directory length %d is not a multiple of %d", len(dir), EntryLen)
	}

	text, err := newTextDecoder(opts, leader)
	if err != nil {
		return nil, err
	}

	body := data[base:]
	rec := record.New()
	rec.Leader = string(leader)
	for off := 0; off < len(dir); off += EntryLen {
		entry := dir[off : off+EntryLen]
		tag := string(entry[:EntryTagLen])
		length, lok := buf.Digits(entry, EntryTagLen, EntryLengthLen)
		start, sok := buf.Digits(entry, EntryTagLen+EntryLengthLen, EntryStartLen)
		if !lok || !sok {
			return nil, types.Errorf(types.ErrKindFormat, "iso2709: bad directory entry %q", entry)
		}
		raw, ok := buf.Slice(body, start, length)
		if !ok {
			return nil, types.Errorf(types.ErrKindCorrupt,
				"iso2709: field %s at %d+%d outside data area of %d bytes", tag, start, length, len(body))
		}
		raw = bytes.TrimSuffix(raw, []byte{FieldTerminator})
		rec.Append(decodeField(tag, raw, text))
	}
	return rec, nil
}

func decodeField(tag string, raw []byte, text *textDecoder) record.Field {
	if record.IsControlTag(tag) {
		return record.NewControlField(tag, text.decode(raw))
	}

	ind1, ind2 := record.BlankIndicator, record.BlankIndicator
	if len(raw) > 0 && raw[0] != SubfieldDelimiter {
		ind1 = raw[0]
		raw = raw[1:]
	}
	if len(raw) > 0 && raw[0] != SubfieldDelimiter {
		ind2 = raw[0]
		raw = raw[1:]
	}

	f := record.NewDataField(tag, ind1, ind2)
	chunks := bytes.Split(raw, []byte{SubfieldDelimiter})
	// Anything before the first delimiter is not a subfield.
	for _, chunk := range chunks[1:] {
		if len(chunk) == 0 {
			continue
		}
		f.AddSubfield(chunk[0], text.decode(chunk[1:]))
	}
	return f
}

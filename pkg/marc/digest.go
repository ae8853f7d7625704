package marc

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/joshuapare/marckit/record"
)

// DigestSize is the length of a record digest in bytes.
const DigestSize = 32

// RecordDigest is a BLAKE3 hash of a record's content.
type RecordDigest [DigestSize]byte

// String returns the digest as lowercase hex.
func (d RecordDigest) String() string {
	return hex.EncodeToString(d[:])
}

// Separators keep distinct records from hashing the same bytes.
const (
	sepField    = 0x1E
	sepSubfield = 0x1F
	sepLeader   = 0x1D
)

// Digest hashes the leader, field order, tags, indicators and subfields of
// rec. The leader's record length and base address are ignored since every
// encoder recomputes them.
func Digest(rec *record.Record) RecordDigest {
	h := blake3.New()
	buf := make([]byte, 0, 256)
	buf = appendLeader(buf, rec.Leader)
	buf = append(buf, sepLeader)
	for _, f := range rec.Fields() {
		buf = append(buf, f.Tag()...)
		switch v := f.(type) {
		case *record.ControlField:
			buf = append(buf, v.Data...)
		case *record.DataField:
			buf = append(buf, v.Indicators[0], v.Indicators[1])
			for _, sf := range v.Subfields() {
				buf = append(buf, sepSubfield, sf.Code)
				buf = append(buf, sf.Value...)
			}
		}
		buf = append(buf, sepField)
		_, _ = h.Write(buf)
		buf = buf[:0]
	}
	_, _ = h.Write(buf)

	var d RecordDigest
	copy(d[:], h.Sum(nil))
	return d
}

func appendLeader(buf []byte, leader string) []byte {
	start := len(buf)
	buf = append(buf, leader...)
	if len(leader) != record.LeaderLen {
		return buf
	}
	l := buf[start:]
	copy(l[0:5], "00000")
	copy(l[12:17], "00000")
	return buf
}

package mrktext

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// maxLine bounds a single field line.
const maxLine = 1 << 20

// Reader streams records from mnemonic text. Records are separated by one
// or more blank lines.
type Reader struct {
	sc   *bufio.Scanner
	dec  *lineDecoder
	line int
	n    int
	err  error
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts types.ReadOptions) (*Reader, error) {
	dec, err := newLineDecoder(opts)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Reader{sc: sc, dec: dec}, nil
}

// Next returns the next record or io.EOF. A malformed line fails only the
// record it belongs to; the following call resumes after that record.
func (r *Reader) Next() (*record.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	var (
		rec    *record.Record
		recErr error
	)
	for r.sc.Scan() {
		r.line++
		text := strings.TrimRight(r.dec.decode(r.sc.Bytes()), CR)
		if strings.TrimSpace(text) == "" {
			if rec != nil || recErr != nil {
				break
			}
			continue
		}
		if rec == nil && recErr == nil {
			rec = record.New()
			r.n++
		}
		if recErr != nil {
			continue
		}
		if err := parseLine(rec, text); err != nil {
			recErr = types.Wrap(types.ErrKindFormat, err, "mrktext: record %d, line %d", r.n, r.line)
		}
	}
	if err := r.sc.Err(); err != nil {
		r.err = err
		return nil, err
	}
	if recErr != nil {
		return nil, recErr
	}
	if rec == nil {
		r.err = io.EOF
		return nil, io.EOF
	}
	return rec, nil
}

// Count returns how many records Next has started.
func (r *Reader) Count() int {
	return r.n
}

// Parse decodes every record in data. With opts.Tolerant, malformed records
// are skipped and their errors returned alongside the good ones.
func Parse(data []byte, opts types.ReadOptions) ([]*record.Record, []error) {
	rd, err := NewReader(strings.NewReader(string(data)), opts)
	if err != nil {
		return nil, []error{err}
	}
	var (
		recs []*record.Record
		errs []error
	)
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return recs, errs
		}
		if err != nil {
			errs = append(errs, err)
			if !opts.Tolerant {
				return recs, errs
			}
			continue
		}
		recs = append(recs, rec)
	}
}

func parseLine(rec *record.Record, line string) error {
	if !strings.HasPrefix(line, LinePrefix) || len(line) < tagEnd {
		return errors.New("line does not start with =TAG")
	}
	tag := line[len(LinePrefix):tagEnd]
	rest := line[tagEnd:]
	if strings.HasPrefix(rest, TagSeparator) {
		rest = rest[len(TagSeparator):]
	} else {
		rest = strings.TrimPrefix(rest, " ")
	}

	switch {
	case tag == LeaderTag:
		rec.Leader = unblank(rest)
	case record.IsControlTag(tag):
		rec.Append(record.NewControlField(tag, unblank(rest)))
	default:
		f, err := parseDataField(tag, rest)
		if err != nil {
			return err
		}
		rec.Append(f)
	}
	return nil
}

func parseDataField(tag, content string) (*record.DataField, error) {
	if len(content) < 2 {
		return nil, errors.New("data field " + tag + " is missing indicators")
	}
	ind := [2]byte{content[0], content[1]}
	for i, b := range ind {
		if b == BlankMark {
			ind[i] = record.BlankIndicator
		}
	}
	f := record.NewDataField(tag, ind[0], ind[1])

	chunks := strings.Split(content[2:], string(SubfieldMarker))
	// chunks[0] precedes the first marker and is not a subfield.
	for _, chunk := range chunks[1:] {
		if chunk == "" {
			continue
		}
		f.AddSubfield(chunk[0], unescapeValue(chunk[1:]))
	}
	return f, nil
}

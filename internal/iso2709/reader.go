package iso2709

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// Reader streams records from an ISO 2709 byte stream.
//
// Each record is read up to its terminator, so a malformed record yields an
// error for that record only and the next call to Next resumes with the
// following one.
type Reader struct {
	br   *bufio.Reader
	opts types.ReadOptions
	n    int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts types.ReadOptions) *Reader {
	return &Reader{br: bufio.NewReader(r), opts: opts}
}

// Next returns the next record. It returns io.EOF when the stream is
// exhausted. Decode failures are *types.Error values naming the record
// ordinal (1-based).
func (r *Reader) Next() (*record.Record, error) {
	for {
		chunk, err := r.br.ReadBytes(RecordTerminator)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		// Tolerate line breaks some tools insert between records.
		chunk = bytes.TrimLeft(chunk, "\r\n \x00")
		if len(chunk) == 0 {
			if err != nil {
				return nil, io.EOF
			}
			continue
		}
		r.n++
		if err != nil && chunk[len(chunk)-1] != RecordTerminator {
			return nil, types.Errorf(types.ErrKindFormat, "iso2709: record %d: missing record terminator", r.n)
		}
		rec, derr := Decode(chunk, r.opts)
		if derr != nil {
			return nil, types.Wrap(kindOf(derr), derr, "record %d", r.n)
		}
		return rec, nil
	}
}

// Count returns how many records Next has attempted to decode.
func (r *Reader) Count() int {
	return r.n
}

// ReadAll decodes every record in data. With opts.Tolerant, malformed records
// are skipped and their errors collected; otherwise the first error stops
// decoding.
func ReadAll(data []byte, opts types.ReadOptions) ([]*record.Record, []error) {
	rd := NewReader(bytes.NewReader(data), opts)
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

// Writer encodes records to an underlying stream.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes and writes one record.
func (w *Writer) Write(rec *record.Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	_, err = w.w.Write(data)
	return err
}

// Close is a no-op; the caller owns the underlying writer.
func (w *Writer) Close() error {
	return nil
}

func kindOf(err error) types.ErrKind {
	var te *types.Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return types.ErrKindFormat
}

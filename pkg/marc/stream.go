package marc

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/joshuapare/marckit/internal/iso2709"
	"github.com/joshuapare/marckit/internal/marcxml"
	"github.com/joshuapare/marckit/internal/mmfile"
	"github.com/joshuapare/marckit/internal/mrktext"
	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

// RecordReader yields records until io.EOF.
type RecordReader interface {
	Next() (*record.Record, error)
}

// RecordWriter accepts records; Close flushes any trailer.
type RecordWriter interface {
	Write(rec *record.Record) error
	Close() error
}

// NewReader decodes records of format f from r.
func NewReader(r io.Reader, f types.Format, opts types.ReadOptions) (RecordReader, error) {
	switch f {
	case types.FormatISO2709:
		return iso2709.NewReader(r, opts), nil
	case types.FormatMnemonic:
		return mrktext.NewReader(r, opts)
	case types.FormatXML:
		return marcxml.NewReader(r, opts)
	default:
		return nil, types.Errorf(types.ErrKindUnsupported, "marc: no reader for format %q", f)
	}
}

// NewWriter encodes records of format f to w. Closing the RecordWriter
// leaves w open.
func NewWriter(w io.Writer, f types.Format, opts types.WriteOptions) (RecordWriter, error) {
	switch f {
	case types.FormatISO2709:
		return iso2709.NewWriter(w), nil
	case types.FormatMnemonic:
		return mrktext.NewWriter(w, opts.CRLF), nil
	case types.FormatXML:
		return marcxml.NewWriter(w, opts.Indent), nil
	default:
		return nil, types.Errorf(types.ErrKindUnsupported, "marc: no writer for format %q", f)
	}
}

// Input is an open record file.
type Input struct {
	RecordReader
	Format  types.Format
	closers []func() error
}

// Close releases the file and any mapping.
func (in *Input) Close() error {
	return runClosers(in.closers)
}

// Open opens path for reading. The format comes from opts.Format or, when
// empty, from the file name.
func Open(path string, opts types.ReadOptions) (*Input, error) {
	format, compressed, err := resolveFormat(path, opts.Format)
	if err != nil {
		return nil, err
	}
	in := &Input{Format: format}

	var src io.Reader
	if opts.MapFile && !compressed {
		data, cleanup, err := mmfile.Map(path)
		if err != nil {
			return nil, err
		}
		in.closers = append(in.closers, cleanup)
		src = bytes.NewReader(data)
	} else {
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.Wrap(types.ErrKindNotFound, err, "marc: open %s", path)
		}
		if err != nil {
			return nil, err
		}
		in.closers = append(in.closers, f.Close)
		src = bufio.NewReader(f)
		if compressed {
			xr, err := xz.NewReader(src)
			if err != nil {
				_ = in.Close()
				return nil, types.Wrap(types.ErrKindFormat, err, "marc: xz stream %s", path)
			}
			src = xr
		}
	}

	rr, err := NewReader(src, format, opts)
	if err != nil {
		_ = in.Close()
		return nil, err
	}
	in.RecordReader = rr
	return in, nil
}

// Output is a record file being written.
type Output struct {
	RecordWriter
	Format  types.Format
	closers []func() error
}

// Close flushes the encoder, the compressor and the file, in that order.
func (out *Output) Close() error {
	return runClosers(out.closers)
}

// Create creates or truncates path for writing. Output is xz-compressed when
// opts.Compress is set or the name ends in .xz.
func Create(path string, opts types.WriteOptions) (*Output, error) {
	format, compressed, err := resolveFormat(path, opts.Format)
	if err != nil {
		return nil, err
	}
	compressed = compressed || opts.Compress

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	out := &Output{Format: format}
	// Closers run last-in first-out.
	out.closers = append(out.closers, f.Close)

	var dst io.Writer = f
	if compressed {
		xw, err := xz.NewWriter(f)
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		out.closers = append(out.closers, xw.Close)
		dst = xw
	}

	rw, err := NewWriter(dst, format, opts)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	out.closers = append(out.closers, rw.Close)
	out.RecordWriter = rw
	return out, nil
}

func resolveFormat(path string, explicit types.Format) (types.Format, bool, error) {
	format, compressed, err := types.FormatForPath(path)
	if explicit != "" {
		return explicit, compressed, nil
	}
	return format, compressed, err
}

func runClosers(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReadFile decodes every record in path. Bad records are skipped and
// reported when opts.Tolerant is set; otherwise reading stops at the first.
func ReadFile(path string, opts types.ReadOptions) ([]*record.Record, []error) {
	in, err := Open(path, opts)
	if err != nil {
		return nil, []error{err}
	}
	defer in.Close()

	var (
		recs []*record.Record
		errs []error
	)
	for {
		rec, err := in.Next()
		if errors.Is(err, io.EOF) {
			return recs, errs
		}
		if err != nil {
			errs = append(errs, err)
			if !opts.Tolerant || !IsRecordError(err) {
				return recs, errs
			}
			continue
		}
		recs = append(recs, rec)
	}
}

// WriteFile encodes recs to path.
func WriteFile(path string, recs []*record.Record, opts types.WriteOptions) (err error) {
	out, err := Create(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	for _, rec := range recs {
		if err := out.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// IsRecordError reports whether err describes one bad record rather than a
// failure of the stream itself.
func IsRecordError(err error) bool {
	var te *types.Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Kind == types.ErrKindFormat || te.Kind == types.ErrKindCorrupt
}

// IsEncodeError reports whether err means one record could not be encoded,
// as opposed to a failure of the output stream.
func IsEncodeError(err error) bool {
	var te *types.Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Kind == types.ErrKindUnsupported || te.Kind == types.ErrKindFormat
}

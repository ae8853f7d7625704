package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // malformed stream structure (bad leader, missing terminator)
	ErrKindCorrupt                    // inconsistent record (directory points outside data)
	ErrKindUnsupported                // valid feature we don't support (e.g. MARC-8)
	ErrKindNotFound                   // missing file/record
	ErrKindConfig                     // invalid pipeline configuration
)

// String returns a short name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindNotFound:
		return "not found"
	case ErrKindConfig:
		return "config"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrCorrupt)
// holds for every corrupt-record error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && isSentinel(t) && e.Kind == t.Kind
}

// Errorf builds a typed error of kind with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a typed error of kind around err.
func Wrap(kind ErrKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Sentinels commonly returned by implementations.
var (
	// ErrFormat indicates a malformed record stream.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "malformed record"}
	// ErrCorrupt indicates a structurally inconsistent record.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt record structure"}
	// ErrUnsupported indicates a recognized but unsupported feature.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported record feature"}
	// ErrNotFound indicates a missing file or record.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrConfig indicates an invalid pipeline configuration.
	ErrConfig = &Error{Kind: ErrKindConfig, Msg: "invalid configuration"}
)

func isSentinel(e *Error) bool {
	switch e {
	case ErrFormat, ErrCorrupt, ErrUnsupported, ErrNotFound, ErrConfig:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Stream Formats
// -----------------------------------------------------------------------------

// Format names a record stream encoding.
type Format string

const (
	// FormatISO2709 is the binary exchange format (.mrc, .iso).
	FormatISO2709 Format = "iso2709"
	// FormatMnemonic is the line-oriented mnemonic text format (.mrk).
	FormatMnemonic Format = "mrk"
	// FormatXML is MARCXML (.xml).
	FormatXML Format = "xml"
)

// CompressedSuffix marks xz-compressed streams.
const CompressedSuffix = ".xz"

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "iso2709", "iso", "mrc", "marc":
		return FormatISO2709, nil
	case "mrk", "mnemonic", "text":
		return FormatMnemonic, nil
	case "xml", "marcxml":
		return FormatXML, nil
	default:
		return "", Errorf(ErrKindUnsupported, "unknown record format %q", s)
	}
}

// FormatForPath guesses a format from a file name, ignoring a trailing .xz.
// It reports whether the stream is compressed.
func FormatForPath(path string) (f Format, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, CompressedSuffix) {
		compressed = true
		name = strings.TrimSuffix(name, CompressedSuffix)
	}
	switch filepath.Ext(name) {
	case ".mrc", ".iso", ".marc", ".dat":
		return FormatISO2709, compressed, nil
	case ".mrk", ".txt":
		return FormatMnemonic, compressed, nil
	case ".xml":
		return FormatXML, compressed, nil
	default:
		return "", compressed, Errorf(ErrKindUnsupported, "cannot infer record format from %q", path)
	}
}

// -----------------------------------------------------------------------------
// Read & Write Options
// -----------------------------------------------------------------------------

// ReadOptions controls decoding of record streams.
type ReadOptions struct {
	// Format selects the decoder. Empty means infer from the file name.
	Format Format

	// Encoding names the character set of records whose leader does not
	// declare UTF-8. Supported: "ISO-8859-1" (default), "Windows-1252".
	Encoding string

	// NormalizeNFC applies Unicode NFC normalization to decoded text.
	// Default: false
	NormalizeNFC bool

	// Tolerant keeps reading after a malformed record; the error is still
	// returned for that record. Default: true
	Tolerant bool

	// MapFile memory-maps uncompressed input files instead of reading them.
	// Default: true
	MapFile bool
}

// DefaultReadOptions returns recommended read settings.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Encoding: EncodingLatin1,
		Tolerant: true,
		MapFile:  true,
	}
}

// WriteOptions controls encoding of record streams.
type WriteOptions struct {
	// Format selects the encoder. Empty means infer from the file name.
	Format Format

	// Compress writes an xz stream. Inferred from a .xz suffix when false.
	Compress bool

	// Indent pretty-prints MARCXML output.
	// Default: true
	Indent bool

	// CRLF ends mnemonic text lines with CRLF instead of LF.
	// Default: false
	CRLF bool
}

// DefaultWriteOptions returns recommended write settings.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Indent: true}
}

// Character sets accepted by ReadOptions.Encoding.
const (
	EncodingUTF8    = "UTF-8"
	EncodingLatin1  = "ISO-8859-1"
	EncodingWin1252 = "Windows-1252"
)

package mrktext

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/marckit/pkg/types"
)

// lineDecoder turns raw input lines into UTF-8 text. Lines that are already
// valid UTF-8 pass through; anything else goes through the legacy charset
// named by the read options.
type lineDecoder struct {
	legacy *encoding.Decoder
	nfc    bool
}

func newLineDecoder(opts types.ReadOptions) (*lineDecoder, error) {
	d := &lineDecoder{nfc: opts.NormalizeNFC}
	switch strings.ToUpper(opts.Encoding) {
	case "", strings.ToUpper(types.EncodingLatin1), "LATIN-1", "LATIN1":
		d.legacy = charmap.ISO8859_1.NewDecoder()
	case strings.ToUpper(types.EncodingWin1252), "CP1252":
		d.legacy = charmap.Windows1252.NewDecoder()
	case types.EncodingUTF8, "UTF8":
	default:
		return nil, types.Errorf(types.ErrKindUnsupported, "mrktext: unsupported encoding %q", opts.Encoding)
	}
	return d, nil
}

func (d *lineDecoder) decode(line []byte) string {
	line = bytes.TrimPrefix(line, []byte(UTF8BOM))
	var s string
	switch {
	case utf8.Valid(line):
		s = string(line)
	case d.legacy != nil:
		out, err := d.legacy.Bytes(line)
		if err != nil {
			out = bytes.ToValidUTF8(line, []byte(string(utf8.RuneError)))
		}
		s = string(out)
	default:
		s = string(bytes.ToValidUTF8(line, []byte(string(utf8.RuneError))))
	}
	if d.nfc {
		s = norm.NFC.String(s)
	}
	return s
}

// unblank maps BlankMark to a space in positional data.
func unblank(s string) string {
	return strings.ReplaceAll(s, string(BlankMark), " ")
}

// blank maps spaces to BlankMark in positional data.
func blank(s string) string {
	return strings.ReplaceAll(s, " ", string(BlankMark))
}

func unescapeValue(s string) string {
	return strings.ReplaceAll(s, DollarEscape, string(SubfieldMarker))
}

func escapeValue(s string) string {
	return strings.ReplaceAll(s, string(SubfieldMarker), DollarEscape)
}

package iso2709

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/marckit/pkg/types"
)

// textDecoder turns raw field bytes into UTF-8 strings.
type textDecoder struct {
	legacy *encoding.Decoder
	nfc    bool
}

func newTextDecoder(opts types.ReadOptions, leader []byte) (*textDecoder, error) {
	d := &textDecoder{nfc: opts.NormalizeNFC}
	if len(leader) > CodingSchemeOffset && leader[CodingSchemeOffset] == UnicodeCodingScheme {
		return d, nil
	}
	switch strings.ToUpper(opts.Encoding) {
	case "", strings.ToUpper(types.EncodingLatin1), "LATIN-1", "LATIN1":
		d.legacy = charmap.ISO8859_1.NewDecoder()
	case strings.ToUpper(types.EncodingWin1252), "CP1252":
		d.legacy = charmap.Windows1252.NewDecoder()
	case types.EncodingUTF8, "UTF8":
	default:
		return nil, types.Errorf(types.ErrKindUnsupported, "iso2709: unsupported encoding %q", opts.Encoding)
	}
	return d, nil
}

func (d *textDecoder) decode(b []byte) string {
	var s string
	if d.legacy != nil {
		out, err := d.legacy.Bytes(b)
		if err != nil {
			out = b
		}
		s = string(out)
	} else {
		s = string(b)
		if !utf8.ValidString(s) {
			s = strings.ToValidUTF8(s, string(utf8.RuneError))
		}
	}
	if d.nfc {
		s = norm.NFC.String(s)
	}
	return s
}

package mapiprop

import (
	"bytes"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// codepageEncodings maps the Windows codepage identifiers seen in a
// TnefAttrOemCodepage attribute to the golang.org/x/text/encoding
// implementation that decodes PT_STRING8 bytes for that codepage.
// Codepages this module does not recognize fall back to the
// chardet-driven autodetection StringDecoder uses when no codepage has
// been set.
var codepageEncodings = map[uint32]encoding.Encoding{
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	28591: charmap.ISO8859_1,
}

// CodepageToEncoding maps a Windows codepage number to its decoder.
// ok is false if the codepage is not in the table, in which case the
// caller should keep using whatever fallback it already had.
func CodepageToEncoding(codepage uint32) (enc encoding.Encoding, ok bool) {
	enc, ok = codepageEncodings[codepage]
	return enc, ok
}

// StringDecoder decodes PT_STRING8 bytes into Go strings. A TNEF
// stream carries at most one AttOemCodepage attribute that names the
// 8-bit encoding every subsequent String8 property uses; until that
// attribute is seen, bytes are decoded with best-effort autodetection
// instead. The CFB reader (msgfile) does not use StringDecoder.
type StringDecoder struct {
	enc encoding.Encoding
}

// NewStringDecoder returns a StringDecoder that autodetects the
// encoding of each String8 value until SetCodepage pins one down.
func NewStringDecoder() *StringDecoder {
	return &StringDecoder{}
}

// SetCodepage pins the decoder to the encoding named by codepage. An
// unrecognized codepage leaves the decoder in autodetect mode.
func (d *StringDecoder) SetCodepage(codepage uint32) {
	if enc, ok := CodepageToEncoding(codepage); ok {
		d.enc = enc
	}
}

// DecodeString8 decodes data as an 8-bit string, using the pinned
// codepage if one was set, or autodetecting it otherwise.
func (d *StringDecoder) DecodeString8(data []byte) (string, error) {
	if d.enc != nil {
		out, err := d.enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return autodetectString8(data)
}

// autodetectString8 mirrors the detect-then-decode chain: try
// chardet's best guess first, fall back to the two most common
// Outlook 8-bit encodings via charset.Lookup, and finally assume the
// bytes are already UTF-8.
func autodetectString8(data []byte) (string, error) {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err == nil && result != nil {
		var enc encoding.Encoding
		switch strings.ToLower(result.Charset) {
		case "windows-1252":
			enc = charmap.Windows1252
		case "iso-8859-1":
			enc = charmap.ISO8859_1
		case "utf-8":
			enc = nil
		default:
			enc, _ = charset.Lookup(result.Charset)
		}
		if enc != nil {
			decoded, err := decodeWith(enc, data)
			if err == nil {
				return decoded, nil
			}
		} else {
			return string(data), nil
		}
	}

	for _, label := range []string{"windows-1252", "iso-8859-1"} {
		r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
		if err != nil {
			continue
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}

	return string(data), nil
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	r := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

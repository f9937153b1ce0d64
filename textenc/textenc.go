// Package textenc detects the character encoding of file contents and
// converts between raw bytes and UTF-8 document text.
package textenc

import (
	"bytes"
	"fmt"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Canonical names for the unicode encodings. Legacy encodings keep their
// IANA-style labels.
const (
	UTF8    = "UTF-8"
	UTF8BOM = "UTF-8(BOM)"
	UTF16LE = "UTF-16LE"
	UTF16BE = "UTF-16BE"
	UTF32LE = "UTF-32LE"
	UTF32BE = "UTF-32BE"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// sniffLimit caps how much of a file feeds the statistical detector.
const sniffLimit = 64 * 1024

// minConfidence is the detector score (0-100) below which the result is
// ignored and UTF-8 assumed.
const minConfidence = 50

// codecs maps encoding names to their transform. UTF-8 and UTF-8(BOM) need
// none and are absent.
var codecs = map[string]encoding.Encoding{
	UTF16LE: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	UTF16BE: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	UTF32LE: utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	UTF32BE: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),

	"Shift_JIS":    japanese.ShiftJIS,
	"EUC-JP":       japanese.EUCJP,
	"ISO-2022-JP":  japanese.ISO2022JP,
	"EUC-KR":       korean.EUCKR,
	"GB18030":      simplifiedchinese.GB18030,
	"GBK":          simplifiedchinese.GBK,
	"Big5":         traditionalchinese.Big5,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1256": charmap.Windows1256,
	"ISO-8859-1":   charmap.ISO8859_1,
	"ISO-8859-2":   charmap.ISO8859_2,
	"ISO-8859-5":   charmap.ISO8859_5,
	"ISO-8859-6":   charmap.ISO8859_6,
	"ISO-8859-7":   charmap.ISO8859_7,
	"ISO-8859-8":   charmap.ISO8859_8,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
	"KOI8-R":       charmap.KOI8R,
	"IBM866":       charmap.CodePage866,
}

// Detect returns the encoding name for raw file bytes. Byte-order marks win
// outright; otherwise a statistical detector runs over the first 64 KiB and
// low-confidence or unrecognized answers fall back to UTF-8.
func Detect(data []byte) string {
	if len(data) == 0 {
		return UTF8
	}
	// UTF-32 BOMs share a prefix with UTF-16 and are checked first.
	switch {
	case bytes.HasPrefix(data, bomUTF32LE):
		return UTF32LE
	case bytes.HasPrefix(data, bomUTF32BE):
		return UTF32BE
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	}
	sample := data
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}
	if ascii(sample) {
		return UTF8
	}
	best, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || best == nil || best.Confidence < minConfidence {
		return UTF8
	}
	return canonical(best.Charset)
}

func ascii(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// canonical maps detector labels onto the names this package uses. ASCII
// is plain UTF-8; any other label passes through unchanged as a best-effort
// name, and Decode/Encode fall back to raw bytes for names they lack.
func canonical(label string) string {
	if label == "ASCII" {
		return UTF8
	}
	return label
}

// Decode converts raw file bytes in the named encoding to a UTF-8 string,
// stripping any byte-order mark.
func Decode(data []byte, name string) (string, error) {
	switch name {
	case UTF8:
		return string(data), nil
	case UTF8BOM:
		return string(bytes.TrimPrefix(data, bomUTF8)), nil
	case UTF16LE:
		data = bytes.TrimPrefix(data, bomUTF16LE)
	case UTF16BE:
		data = bytes.TrimPrefix(data, bomUTF16BE)
	case UTF32LE:
		data = bytes.TrimPrefix(data, bomUTF32LE)
	case UTF32BE:
		data = bytes.TrimPrefix(data, bomUTF32BE)
	}
	enc, ok := codecs[name]
	if !ok {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 document text to raw bytes in the named encoding,
// emitting the byte-order mark the name calls for.
func Encode(text string, name string) ([]byte, error) {
	var bom []byte
	switch name {
	case UTF8:
		return []byte(text), nil
	case UTF8BOM:
		return append(append([]byte{}, bomUTF8...), text...), nil
	case UTF16LE:
		bom = bomUTF16LE
	case UTF16BE:
		bom = bomUTF16BE
	case UTF32LE:
		bom = bomUTF32LE
	case UTF32BE:
		bom = bomUTF32BE
	}
	enc, ok := codecs[name]
	if !ok {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return append(append([]byte{}, bom...), out...), nil
}

// Known reports whether name is an encoding this package can write.
func Known(name string) bool {
	if name == UTF8 || name == UTF8BOM {
		return true
	}
	_, ok := codecs[name]
	return ok
}

// Package encoding normalizes the text encodings photometric exports come in.
//
// Measurement software on Windows often writes Windows-1252 or UTF-16 files.
// Everything downstream expects UTF-8.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ToUTF8 converts data to UTF-8 without a byte order mark.
// UTF-16 is recognized by its BOM; other input that is not valid UTF-8
// is read as Windows-1252.
func ToUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return decode(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), data)
	case utf8.Valid(data):
		return bytes.TrimPrefix(data, bomUTF8), nil
	default:
		return Windows1252ToUTF8(data), nil
	}
}

// Windows1252ToUTF8 converts Windows-1252 (a superset of Latin-1 printable
// characters) to UTF-8. Every byte has a mapping, so it cannot fail.
func Windows1252ToUTF8(data []byte) []byte {
	out, _ := decode(charmap.Windows1252.NewDecoder(), data)
	return out
}

func decode(t transform.Transformer, data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Package chardet detects and decodes the small family of text encodings
// that C and C++ source files are found in on real projects. Detection is
// deliberately closed: every input maps to one of the five supported
// encodings, and decoding is tolerant, so a scan never stops because of a
// strange file.
package chardet

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies one of the supported source file encodings.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
	Latin1
)

// String returns the conventional name of the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16-le"
	case UTF16BE:
		return "utf-16-be"
	case Latin1:
		return "latin-1"
	default:
		return "unknown"
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// heuristicWindow bounds how much of a file the zero-byte distribution
// check inspects. The first few hundred bytes of a source file are enough
// to separate the UTF-16 variants from single-byte text.
const heuristicWindow = 512

// Detect classifies raw file content. It never fails: content that is not
// UTF-8 and carries no UTF-16 signature is treated as Latin-1, which can
// represent any byte sequence. Empty content is UTF-8.
func Detect(data []byte) Encoding {
	if len(data) == 0 {
		return UTF8
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	}

	window := data
	if len(window) > heuristicWindow {
		window = window[:heuristicWindow]
	}

	// UTF-16 text that is mostly ASCII has a zero byte in every other
	// position: after the low byte for little endian, before it for big
	// endian. Interleaved NULs also form valid UTF-8, so this check must
	// run before the UTF-8 validity check; the threshold keeps a stray
	// NUL in otherwise ordinary text from flipping the classification.
	var evenZeros, oddZeros int
	for i, b := range window {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			evenZeros++
		} else {
			oddZeros++
		}
	}
	if zeros := evenZeros + oddZeros; zeros*4 >= len(window) {
		switch {
		case oddZeros > evenZeros:
			return UTF16LE
		case evenZeros > oddZeros:
			return UTF16BE
		}
	}

	if utf8.Valid(data) {
		return UTF8
	}

	return Latin1
}

// decoder returns the x/text decoder for the detected encoding. UTF-8
// needs no transformation, so the caller handles it directly.
func decoder(enc Encoding) *encoding.Decoder {
	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case Latin1:
		return charmap.ISO8859_1.NewDecoder()
	default:
		return nil
	}
}

// DecodeString detects the encoding of data and converts it to a UTF-8
// string. Malformed sequences are replaced rather than rejected, and a
// transformer failure falls back to a byte-preserving conversion, so the
// result is always usable text.
func DecodeString(data []byte) (string, Encoding) {
	enc := Detect(data)

	switch enc {
	case UTF8:
		return string(data), enc
	case UTF8BOM:
		return string(data[len(bomUTF8):]), enc
	}

	out, err := decoder(enc).Bytes(data)
	if err != nil {
		// Last resort: widen each byte to a rune. Loses the encoding
		// but keeps every include directive findable.
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return string(runes), enc
	}
	return string(out), enc
}

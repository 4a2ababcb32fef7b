package notestore

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// Encoding identifies how a note file stores its text on disk.
type Encoding uint8

const (
	EncodingUTF8    Encoding = iota // no byte order mark
	EncodingUTF8BOM                 // EF BB BF
	EncodingUTF16LE                 // FF FE
	EncodingUTF16BE                 // FE FF
)

// String returns the encoding's display name.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8 bom"
	case EncodingUTF16LE:
		return "utf-16 le"
	case EncodingUTF16BE:
		return "utf-16 be"
	default:
		return "utf-8"
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detectEncoding inspects the byte order mark and returns the encoding
// plus the payload with the mark stripped.
func detectEncoding(data []byte) (Encoding, []byte) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM, data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE, data[len(bomUTF16LE):]
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE, data[len(bomUTF16BE):]
	default:
		return EncodingUTF8, data
	}
}

// binarySniffLen bounds how far the binary check looks, matching the
// usual text-or-binary heuristic window.
const binarySniffLen = 8000

// isBinary reports whether decoded content looks like binary rather
// than text. A NUL byte in the leading window is the tell.
func isBinary(data []byte) bool {
	sample := data
	if len(sample) > binarySniffLen {
		sample = sample[:binarySniffLen]
	}
	return bytes.IndexByte(sample, 0) >= 0
}

// decodeText converts raw note file bytes to LF-normalized UTF-8 text.
// It reports the encoding and line ending style found so a save can
// reproduce them.
func decodeText(data []byte) (string, Encoding, buffer.LineEnding, error) {
	enc, payload := detectEncoding(data)

	var text string
	switch enc {
	case EncodingUTF16LE, EncodingUTF16BE:
		decoded, err := decodeUTF16(payload, enc)
		if err != nil {
			return "", enc, buffer.LineEndingLF, fmt.Errorf("decode %s: %w", enc, err)
		}
		text = decoded
	default:
		if isBinary(payload) {
			return "", enc, buffer.LineEndingLF, ErrBinaryContent
		}
		text = string(payload)
	}

	if strings.ContainsRune(text, 0) {
		return "", enc, buffer.LineEndingLF, ErrBinaryContent
	}

	le := detectLineEnding(text)
	return normalizeNewlines(text), enc, le, nil
}

// encodeText renders text back to the note's stored encoding with its
// byte order mark. Line endings are the caller's concern; the document
// serializes its recorded style before saving.
func encodeText(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingUTF8BOM:
		return append(append([]byte(nil), bomUTF8...), text...), nil
	case EncodingUTF16LE, EncodingUTF16BE:
		return encodeUTF16(text, enc)
	default:
		return []byte(text), nil
	}
}

func utf16Endianness(enc Encoding) unicode.Endianness {
	if enc == EncodingUTF16BE {
		return unicode.BigEndian
	}
	return unicode.LittleEndian
}

func decodeUTF16(payload []byte, enc Encoding) (string, error) {
	dec := unicode.UTF16(utf16Endianness(enc), unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func encodeUTF16(text string, enc Encoding) ([]byte, error) {
	// UseBOM writes the byte order mark back out.
	e := unicode.UTF16(utf16Endianness(enc), unicode.UseBOM).NewEncoder()
	out, err := e.Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

// detectLineEnding classifies the first line break found. Files
// without breaks read as LF.
func detectLineEnding(text string) buffer.LineEnding {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return buffer.LineEndingLF
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return buffer.LineEndingCRLF
			}
			return buffer.LineEndingCR
		}
	}
	return buffer.LineEndingLF
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

package encoding

import (
	"strings"
	"unicode/utf8"
)

// ToSingleByte maps a UTF-8 string to the v3 single-byte encoding. Every
// valid two-byte UTF-8 sequence in the range U+0080..U+00FF collapses to its
// low byte (Latin-1 equivalence); any other multibyte sequence is replaced
// with '?'. ASCII passes through unchanged.
func ToSingleByte(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			out = append(out, byte(r))
		case r <= 0xFF:
			out = append(out, byte(r))
		default:
			out = append(out, '?')
		}
	}
	return out
}

// FromSingleByte expands v3 single-byte text back to UTF-8, re-encoding any
// byte >= 0x80 as the two-byte UTF-8 sequence for that Latin-1 code point.
func FromSingleByte(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < 0x80 {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(rune(c))
		}
	}
	return sb.String()
}

// ValidSingleByteRune reports whether r survives a ToSingleByte/FromSingleByte
// round trip unchanged (ASCII or Latin-1 range).
func ValidSingleByteRune(r rune) bool {
	return r < 0x100
}

// Utf8ByteLen returns the UTF-8 byte length that rune r would occupy, used by
// callers that need to know whether a ToSingleByte conversion is lossy.
func Utf8ByteLen(r rune) int {
	return utf8.RuneLen(r)
}

package snapshot

import "github.com/nuforge/v3bridge/encoding"

// sbTransliterate converts a UTF-8 string from the Nu JSON payload into the
// v3 single-byte text encoding, replacing runes above U+00FF with '?'.
func sbTransliterate(s string) string {
	return string(encoding.ToSingleByte(s))
}

// Package encoding implements the fixed-width binary codec used by v3 files:
// little-endian integers, space-padded fixed-length strings, and the additive
// checksum v3 clients use to validate their local tree.
package encoding

import (
	"encoding/binary"
	"errors"
)

// ErrShortRecord is returned when an unpack call runs out of input bytes.
var ErrShortRecord = errors.New("short record")

// Read16 reads a little-endian uint16 at the given offset.
func Read16(b []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(b[offset:])
}

// Read32 reads a little-endian uint32 at the given offset.
func Read32(b []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(b[offset:])
}

// Write16 writes a little-endian uint16 at the given offset.
func Write16(b []byte, offset int, v uint16) {
	binary.LittleEndian.PutUint16(b[offset:], v)
}

// Write32 writes a little-endian uint32 at the given offset.
func Write32(b []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(b[offset:], v)
}

// WriteI16 writes a signed 16-bit value as its two's-complement bit pattern.
// Used for fields that carry negative sentinels (e.g. -1 for "unknown
// temperature" or "no native race").
func WriteI16(b []byte, offset int, v int16) {
	Write16(b, offset, uint16(v))
}

// ReadI16 reads a two's-complement 16-bit value back into a signed int.
func ReadI16(b []byte, offset int) int16 {
	return int16(Read16(b, offset))
}

// WriteFixedString writes s into n bytes, space-padded on the right and
// truncated if s is longer than n. Corresponds to pack pattern "An".
func WriteFixedString(b []byte, offset int, n int, s string) {
	dst := b[offset : offset+n]
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}

// ReadFixedString reads an n-byte space-padded string, trimming trailing
// spaces (and NUL, which some fields use as a secondary terminator).
func ReadFixedString(b []byte, offset int, n int) string {
	raw := b[offset : offset+n]
	end := len(raw)
	for end > 0 && (raw[end-1] == ' ' || raw[end-1] == 0) {
		end--
	}
	return string(raw[:end])
}

// AdditiveByteSum computes the simple additive checksum (sum of bytes mod
// 2^32) that the control vector stores for each entity record.
func AdditiveByteSum(b []byte) uint32 {
	var sum uint32
	for _, c := range b {
		sum += uint32(c)
	}
	return sum
}

// Need checks that b has at least n bytes remaining from offset, returning
// ErrShortRecord otherwise. Unpack helpers call this before reading a field
// so that unpacking never silently pads with zeros.
func Need(b []byte, offset, n int) error {
	if offset < 0 || offset+n > len(b) {
		return ErrShortRecord
	}
	return nil
}

// SubArray returns a copy of input[startIdx:endIdx+1].
func SubArray(input []byte, startIdx, endIdx int) []byte {
	out := make([]byte, endIdx-startIdx+1)
	copy(out, input[startIdx:endIdx+1])
	return out
}

package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite16(t *testing.T) {
	b := make([]byte, 4)
	Write16(b, 0, 0x1234)
	assert.Equal(t, uint16(0x1234), Read16(b, 0))
}

func TestReadWrite32(t *testing.T) {
	b := make([]byte, 8)
	Write32(b, 2, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), Read32(b, 2))
}

func TestSignedSentinel(t *testing.T) {
	b := make([]byte, 2)
	WriteI16(b, 0, -1)
	assert.Equal(t, uint16(0xFFFF), Read16(b, 0))
	assert.Equal(t, int16(-1), ReadI16(b, 0))
}

func TestFixedStringRoundTrip(t *testing.T) {
	b := make([]byte, 20)
	WriteFixedString(b, 0, 20, "Enterprise")
	assert.Equal(t, "Enterprise", ReadFixedString(b, 0, 20))
}

func TestFixedStringTruncates(t *testing.T) {
	b := make([]byte, 3)
	WriteFixedString(b, 0, 3, "Overlong Name")
	assert.Equal(t, "Ove", ReadFixedString(b, 0, 3))
}

func TestAdditiveByteSum(t *testing.T) {
	assert.Equal(t, uint32(0), AdditiveByteSum(nil))
	assert.Equal(t, uint32(3), AdditiveByteSum([]byte{1, 2}))
}

func TestNeedShortRecord(t *testing.T) {
	b := make([]byte, 2)
	require.NoError(t, Need(b, 0, 2))
	require.ErrorIs(t, Need(b, 1, 2), ErrShortRecord)
}

func TestCursorRoundTrip(t *testing.T) {
	w := NewWriter(10)
	w.U16(1)
	w.U32(2)
	w.Str(4, "ab")
	r := NewReader(w.Bytes())
	assert.Equal(t, uint16(1), r.U16())
	assert.Equal(t, uint32(2), r.U32())
	assert.Equal(t, "ab", r.Str(4))
	require.NoError(t, r.Err())
}

func TestCursorShortRecord(t *testing.T) {
	r := NewReader([]byte{1})
	r.U32()
	require.ErrorIs(t, r.Err(), ErrShortRecord)
}

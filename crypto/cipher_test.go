package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptBytesSample(t *testing.T) {
	e := NewEncryptor()
	got := e.EncryptBytes([]byte("AB\n"))
	assert.Equal(t, []byte{'N', 'O', 0x1A}, got)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	e := NewEncryptor()
	d := NewDecryptor()
	original := []byte("hello\nworld")
	encrypted := e.EncryptBytes(original)
	assert.Equal(t, []byte{0x75, 0x72, 0x79, 0x79, 0x7C, 0x1A, 0x84, 0x7C, 0x7F, 0x79, 0x71}, encrypted)
	assert.Equal(t, original, d.DecryptBytes(encrypted))
}

func TestEncryptWraps256(t *testing.T) {
	e := NewEncryptor()
	d := NewDecryptor()
	got := e.EncryptBytes([]byte{250})
	assert.Equal(t, byte((250+13)%256), got[0])
	assert.Equal(t, byte(250), d.DecryptBytes(got)[0])
}

// Package crypto implements the legacy message "encryption" that v3 clients
// apply to message bodies: each character is shifted by 13 (mod 256) and
// newlines are replaced with byte 0x1A. The transform is a simple
// substitution cipher, not cryptographically meaningful, but it keeps the
// teacher's Encryptor/Decryptor pairing — encode and decode are inverse
// operations of the same shape, just not XOR-symmetric this time.
package crypto

const newlineMarker = 0x1A

// Encryptor applies the legacy message cipher when writing a message record.
type Encryptor struct{}

// NewEncryptor creates an Encryptor. There is no per-game state to seed,
// unlike the v3 file-level ciphers this pairing is modeled after.
func NewEncryptor() *Encryptor {
	return &Encryptor{}
}

// EncryptBytes shifts every byte by +13 (mod 256), except newlines, which
// become the 0x1A marker byte instead.
func (e *Encryptor) EncryptBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c == '\n' {
			out[i] = newlineMarker
		} else {
			out[i] = byte((int(c) + 13) % 256)
		}
	}
	return out
}

// Decryptor reverses the legacy message cipher when reading a message
// record back from a client-edited v3 file.
type Decryptor struct{}

// NewDecryptor creates a Decryptor.
func NewDecryptor() *Decryptor {
	return &Decryptor{}
}

// DecryptBytes reverses EncryptBytes: the 0x1A marker becomes a newline,
// every other byte is shifted by -13 (mod 256).
func (d *Decryptor) DecryptBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c == newlineMarker {
			out[i] = '\n'
		} else {
			out[i] = byte((int(c) + 256 - 13) % 256)
		}
	}
	return out
}

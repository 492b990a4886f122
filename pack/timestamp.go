package pack

import "github.com/nuforge/v3bridge/encoding"

// timestampLen is the fixed width of the gen.dat timestamp field.
const timestampLen = 18

// Timestamp derives the 18-byte printable gen.dat timestamp from the
// snapshot's settings.hoststart, space-padding or truncating as needed.
func Timestamp(hostStart string) string {
	if len(hostStart) >= timestampLen {
		return hostStart[:timestampLen]
	}
	return hostStart + spaces(timestampLen-len(hostStart))
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// TimestampChecksum is the additive byte-sum checksum gen.dat embeds
// alongside the timestamp.
func TimestampChecksum(timestamp string) int {
	return int(encoding.AdditiveByteSum([]byte(timestamp)) & 0xFFFF)
}

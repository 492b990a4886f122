package entity

import "github.com/nuforge/v3bridge/encoding"

// GenUnpackedSize and GenResultSize are the two gen.dat layouts the source
// keeps side by side (Design Notes §9 open question): the unpacked mode
// omits a literal '?' byte and a 12-byte filler that the rst mode carries.
const (
	GenUnpackedSize = 144
	GenResultSize   = 157

	scoreSlots     = 44
	checksumSlots  = 3
	passwordField  = "NOPASSWORD"
)

// GenMode selects which gen.dat layout Pack renders.
type GenMode int

const (
	GenModeUnpacked GenMode = iota
	GenModeResult
)

// Gen is the packer-facing view of the general-state section.
type Gen struct {
	Timestamp         string
	Scores            [scoreSlots]int
	Race              int
	Checksums         [checksumSlots]uint32
	Turn              int
	TimestampChecksum int
}

// Pack renders the gen<N>.dat record in the requested mode.
func (g Gen) Pack(mode GenMode) []byte {
	size := GenUnpackedSize
	if mode == GenModeResult {
		size = GenResultSize
	}
	w := encoding.NewWriter(size)
	w.Str(18, g.Timestamp)
	for _, s := range g.Scores {
		w.U16(uint16(s))
	}
	w.U16(uint16(g.Race))
	w.Str(20, passwordField)
	if mode == GenModeResult {
		w.Str(1, "?")
	}
	for _, c := range g.Checksums {
		w.U32(c)
	}
	if mode == GenModeResult {
		w.Skip(12)
	}
	w.U16(uint16(g.Turn))
	w.U16(uint16(g.TimestampChecksum))
	return w.Bytes()
}

// UnpackGen is the inverse of Pack.
func UnpackGen(data []byte, mode GenMode) (Gen, error) {
	r := encoding.NewReader(data)
	var g Gen
	g.Timestamp = r.Str(18)
	for i := range g.Scores {
		g.Scores[i] = int(r.U16())
	}
	g.Race = int(r.U16())
	r.Str(20) // password, constant, not round-tripped into the struct
	if mode == GenModeResult {
		r.Skip(1)
	}
	for i := range g.Checksums {
		g.Checksums[i] = r.U32()
	}
	if mode == GenModeResult {
		r.Skip(12)
	}
	g.Turn = int(r.U16())
	g.TimestampChecksum = int(r.U16())
	return g, r.Err()
}

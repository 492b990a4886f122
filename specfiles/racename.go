package specfiles

import "github.com/nuforge/v3bridge/encoding"

const (
	RaceNameSlots     = 11
	raceNameFullLen   = 30
	raceNameShortLen  = 20
	raceNameAdjLen    = 12
	RaceNameEntrySize = raceNameFullLen + raceNameShortLen + raceNameAdjLen
	RaceNameSize      = RaceNameSlots * RaceNameEntrySize
)

// RaceNameEntry is one race's (name, shortname, adjective) triple, already
// transliterated to the v3 single-byte encoding.
type RaceNameEntry struct {
	Name      string
	ShortName string
	Adjective string
}

// SynthesizeRaceName renders race.nm: 11 back-to-back triples.
func SynthesizeRaceName(byRace map[int]RaceNameEntry) []byte {
	out := make([]byte, RaceNameSize)
	for slot := 1; slot <= RaceNameSlots; slot++ {
		off := (slot - 1) * RaceNameEntrySize
		e := byRace[slot]
		encoding.WriteFixedString(out, off, raceNameFullLen, e.Name)
		encoding.WriteFixedString(out, off+raceNameFullLen, raceNameShortLen, e.ShortName)
		encoding.WriteFixedString(out, off+raceNameFullLen+raceNameShortLen, raceNameAdjLen, e.Adjective)
	}
	return out
}

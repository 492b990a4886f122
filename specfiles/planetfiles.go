package specfiles

import "github.com/nuforge/v3bridge/encoding"

const (
	PlanetSlots     = 500
	XYPlanEntrySize = 6
	XYPlanSize      = PlanetSlots * XYPlanEntrySize
	PlanetNameLen   = 20
	PlanetNameSize  = PlanetSlots * PlanetNameLen
)

// PlanetXY is one planet's position and current owner race, as known to
// every player regardless of visibility.
type PlanetXY struct {
	X, Y, Race int
}

// SynthesizeXYPlan renders xyplan.dat: 500 (x,y,race) triples indexed by
// planet id.
func SynthesizeXYPlan(byPlanetID map[int]PlanetXY) []byte {
	out := make([]byte, XYPlanSize)
	for id := 1; id <= PlanetSlots; id++ {
		off := (id - 1) * XYPlanEntrySize
		p := byPlanetID[id]
		encoding.Write16(out, off, uint16(p.X))
		encoding.Write16(out, off+2, uint16(p.Y))
		encoding.Write16(out, off+4, uint16(p.Race))
	}
	return out
}

// SynthesizePlanetName renders planet.nm: 500 20-byte planet names indexed
// by planet id.
func SynthesizePlanetName(byPlanetID map[int]string) []byte {
	out := make([]byte, PlanetNameSize)
	for id := 1; id <= PlanetSlots; id++ {
		off := (id - 1) * PlanetNameLen
		if name, ok := byPlanetID[id]; ok {
			encoding.WriteFixedString(out, off, PlanetNameLen, name)
		}
	}
	return out
}

package specfiles

import "github.com/nuforge/v3bridge/encoding"

const (
	TrueHullRaces   = 11
	TrueHullPerRace = 20
	TrueHullSize    = TrueHullRaces * TrueHullPerRace * 2
)

// SynthesizeTrueHull renders truehull.dat: an 11x20 matrix of hull ids, one
// row per race. Only localRace's row is rewritten from racehulls; every
// other row is preserved from the template.
func SynthesizeTrueHull(localRace int, racehulls []int, template []byte) []byte {
	out := make([]byte, TrueHullSize)
	if len(template) >= TrueHullSize {
		copy(out, template)
	}
	if localRace < 1 || localRace > TrueHullRaces {
		return out
	}
	rowOff := (localRace - 1) * TrueHullPerRace * 2
	for col := 0; col < TrueHullPerRace; col++ {
		hullID := 0
		if col < len(racehulls) {
			hullID = racehulls[col]
		}
		encoding.Write16(out, rowOff+col*2, uint16(hullID))
	}
	return out
}

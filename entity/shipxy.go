package entity

import "github.com/nuforge/v3bridge/encoding"

// ShipXYSlots is the fixed number of quadruples in the shipxy section.
const ShipXYSlots = 999

// ShipXYEntrySize is the byte length of one (x,y,race,mass) quadruple.
const ShipXYEntrySize = 8

// ShipXYEntry is one ship's position/identity as seen by every player.
type ShipXYEntry struct {
	X, Y, Race, Mass int
}

// PackShipXY renders the shipxy<N>.dat section: 999 quadruples indexed by
// ship id (1-based), zero for any id with no ship.
func PackShipXY(byShipID map[int]ShipXYEntry) []byte {
	w := encoding.NewWriter(ShipXYSlots * ShipXYEntrySize)
	for id := 1; id <= ShipXYSlots; id++ {
		e := byShipID[id]
		w.U16(uint16(e.X))
		w.U16(uint16(e.Y))
		w.U16(uint16(e.Race))
		w.U16(uint16(e.Mass))
	}
	return w.Bytes()
}

// UnpackShipXY is the inverse of PackShipXY.
func UnpackShipXY(data []byte) (map[int]ShipXYEntry, error) {
	r := encoding.NewReader(data)
	out := make(map[int]ShipXYEntry)
	for id := 1; id <= ShipXYSlots; id++ {
		e := ShipXYEntry{X: int(r.U16()), Y: int(r.U16()), Race: int(r.U16()), Mass: int(r.U16())}
		if e.X != 0 || e.Y != 0 || e.Race != 0 || e.Mass != 0 {
			out[id] = e
		}
	}
	return out, r.Err()
}

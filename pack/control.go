package pack

import "github.com/nuforge/v3bridge/encoding"

// ControlSlots is the fixed size of the control vector (§3 "Control vector").
const ControlSlots = 2499

// Control vector slot bands.
const (
	shipSlotBase      = 0
	shipSlotCount     = 500
	planetSlotBase    = 500
	planetSlotCount   = 500
	baseSlotBase      = 1000
	baseSlotCount     = 500
	highShipSlotBase  = 1500
	highShipSlotCount = 999
)

// ControlVector is the array of per-entity checksums v3 clients use to
// validate their local tree (§3 invariant 4).
type ControlVector struct {
	slots [ControlSlots]uint32
}

// ShipSlot returns the control-vector index for a ship id (1-based). Ships
// 1-500 occupy 0-499; ships 501-999 occupy 2000-2498 (offset 1500 + id - 1,
// so ship 501 -> slot 2000, per the boundary example in §8).
func ShipSlot(shipID int) int {
	if shipID >= 1 && shipID <= shipSlotCount {
		return shipSlotBase + shipID - 1
	}
	return highShipSlotBase + shipID - 1
}

// PlanetSlot returns the control-vector index for a planet id (1-based).
func PlanetSlot(planetID int) int { return planetSlotBase + planetID - 1 }

// BaseSlot returns the control-vector index for a base id (1-based).
func BaseSlot(baseID int) int { return baseSlotBase + baseID - 1 }

// Set records the additive byte-sum checksum of a packed record at slot.
func (c *ControlVector) Set(slot int, record []byte) {
	if slot < 0 || slot >= ControlSlots {
		return
	}
	c.slots[slot] = encoding.AdditiveByteSum(record)
}

// Bytes serializes the control vector as 2499 little-endian uint32s.
func (c *ControlVector) Bytes() []byte {
	w := encoding.NewWriter(ControlSlots * 4)
	for _, v := range c.slots {
		w.U32(v)
	}
	return w.Bytes()
}

// At returns the checksum stored at slot, for tests.
func (c *ControlVector) At(slot int) uint32 { return c.slots[slot] }

package entity

import "github.com/nuforge/v3bridge/encoding"

// ShipTargetRecordSize is the byte length of one foreign-ship target record.
const ShipTargetRecordSize = 34

// ShipTarget is a reduced-field view of a ship visible to, but not owned
// by, the local player (§4.6 "Ship target").
type ShipTarget struct {
	ID      int
	Race    int
	Warp    int
	X       int
	Y       int
	Hull    int
	Heading int
	Name    string
}

// Pack renders the target<N>.dat record for one foreign ship.
func (t ShipTarget) Pack() []byte {
	w := encoding.NewWriter(ShipTargetRecordSize)
	w.U16(uint16(t.ID))
	w.U16(uint16(t.Race))
	w.U16(uint16(t.Warp))
	w.U16(uint16(t.X))
	w.U16(uint16(t.Y))
	w.U16(uint16(t.Hull))
	w.U16(uint16(t.Heading))
	w.Str(20, t.Name)
	return w.Bytes()
}

// UnpackShipTarget is the inverse of Pack.
func UnpackShipTarget(data []byte) (ShipTarget, error) {
	r := encoding.NewReader(data)
	var t ShipTarget
	t.ID = int(r.U16())
	t.Race = int(r.U16())
	t.Warp = int(r.U16())
	t.X = int(r.U16())
	t.Y = int(r.U16())
	t.Hull = int(r.U16())
	t.Heading = int(r.U16())
	t.Name = r.Str(20)
	return t, r.Err()
}

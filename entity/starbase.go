package entity

import "github.com/nuforge/v3bridge/encoding"

// StarbaseRecordSize is the byte length of one starbase record.
const StarbaseRecordSize = 156

// Starbase is the packer-facing view of one base owned by the local player.
type Starbase struct {
	PlanetID       int
	Race           int
	Defense        int
	Damage         int
	Tech           [4]int
	EngineStock    [9]int
	HullStock      [20]int
	BeamStock      [10]int
	LauncherStock  [10]int
	TorpStock      [10]int
	Fighters       int
	TargetShipID   int
	ShipMission    int
	Mission        int
	BuildSlot      int
	BuildEngine    int
	BuildBeam      int
	BuildBeamCount int
	BuildTorp      int
	BuildTorpCount int
}

// Pack renders the bdata<N>.dat/.dis record for one starbase.
func (b Starbase) Pack() []byte {
	w := encoding.NewWriter(StarbaseRecordSize)
	w.U16(uint16(b.PlanetID))
	w.U16(uint16(b.Race))
	w.U16(uint16(b.Defense))
	w.U16(uint16(b.Damage))
	for _, v := range b.Tech {
		w.U16(uint16(v))
	}
	for _, v := range b.EngineStock {
		w.U16(uint16(v))
	}
	for _, v := range b.HullStock {
		w.U16(uint16(v))
	}
	for _, v := range b.BeamStock {
		w.U16(uint16(v))
	}
	for _, v := range b.LauncherStock {
		w.U16(uint16(v))
	}
	for _, v := range b.TorpStock {
		w.U16(uint16(v))
	}
	w.U16(uint16(b.Fighters))
	w.U16(uint16(b.TargetShipID))
	w.U16(uint16(b.ShipMission))
	w.U16(uint16(b.Mission))
	w.U16(uint16(b.BuildSlot))
	w.U16(uint16(b.BuildEngine))
	w.U16(uint16(b.BuildBeam))
	w.U16(uint16(b.BuildBeamCount))
	w.U16(uint16(b.BuildTorp))
	w.U16(uint16(b.BuildTorpCount))
	w.U16(0) // reserved trailing word
	return w.Bytes()
}

// UnpackStarbase is the inverse of Pack.
func UnpackStarbase(data []byte) (Starbase, error) {
	r := encoding.NewReader(data)
	var b Starbase
	b.PlanetID = int(r.U16())
	b.Race = int(r.U16())
	b.Defense = int(r.U16())
	b.Damage = int(r.U16())
	for i := range b.Tech {
		b.Tech[i] = int(r.U16())
	}
	for i := range b.EngineStock {
		b.EngineStock[i] = int(r.U16())
	}
	for i := range b.HullStock {
		b.HullStock[i] = int(r.U16())
	}
	for i := range b.BeamStock {
		b.BeamStock[i] = int(r.U16())
	}
	for i := range b.LauncherStock {
		b.LauncherStock[i] = int(r.U16())
	}
	for i := range b.TorpStock {
		b.TorpStock[i] = int(r.U16())
	}
	b.Fighters = int(r.U16())
	b.TargetShipID = int(r.U16())
	b.ShipMission = int(r.U16())
	b.Mission = int(r.U16())
	b.BuildSlot = int(r.U16())
	b.BuildEngine = int(r.U16())
	b.BuildBeam = int(r.U16())
	b.BuildBeamCount = int(r.U16())
	b.BuildTorp = int(r.U16())
	b.BuildTorpCount = int(r.U16())
	r.Skip(2)
	return b, r.Err()
}

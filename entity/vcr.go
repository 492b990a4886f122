package entity

import "github.com/nuforge/v3bridge/encoding"

// vcrSignature is the fixed 0x554E marker every VCR prologue carries.
const vcrSignature = 0x554E

// vcrUnitSize is the byte length of one combatant record: A20 name + 11
// 16-bit fields.
const vcrUnitSize = 20 + 11*2

// vcrEpilogueSize is the byte length of the epilogue shields trailer: one
// 16-bit shield value per combatant.
const vcrEpilogueSize = 2 * 2

// VCRUnit is one combatant in a combat recording.
type VCRUnit struct {
	Name          string
	Damage        int
	Crew          int
	ObjectID      int
	Race          int
	HullID        int
	Image         int
	BeamID        int
	BeamCount     int
	BayCount      int
	TorpedoID     int
	AmmoOrTorps   int
	LauncherCount int
}

// VCR is one self-contained combat recording: a prologue, two combatants,
// and the epilogue shields the client needs to replay it.
type VCR struct {
	Seed        int
	Temperature int
	BattleType  int
	LeftMass    int
	RightMass   int
	Left        VCRUnit
	Right       VCRUnit
	LeftShield  int
	RightShield int
}

func packVCRUnit(w *encoding.Writer, u VCRUnit) {
	w.Str(20, u.Name)
	w.U16(uint16(u.Damage))
	w.U16(uint16(u.Crew))
	w.U16(uint16(u.ObjectID))
	w.U16(uint16(u.Race))
	// image+1+256*hullId per §4.6.
	w.U16(uint16(u.Image + 1 + 256*u.HullID))
	w.U16(uint16(u.BeamID))
	w.U16(uint16(u.BeamCount))
	w.U16(uint16(u.BayCount))
	w.U16(uint16(u.TorpedoID))
	w.U16(uint16(u.AmmoOrTorps))
	w.U16(uint16(u.LauncherCount))
}

// Pack renders one VCR's bytes: prologue, two combatant records, epilogue
// shields.
func (v VCR) Pack() []byte {
	w := encoding.NewWriter(12 + 2*vcrUnitSize + vcrEpilogueSize)
	w.U16(uint16(v.Seed))
	w.U16(vcrSignature)
	w.U16(uint16(v.Temperature))
	w.U16(uint16(v.BattleType))
	w.U16(uint16(v.LeftMass))
	w.U16(uint16(v.RightMass))
	packVCRUnit(w, v.Left)
	packVCRUnit(w, v.Right)
	w.U16(uint16(v.LeftShield))
	w.U16(uint16(v.RightShield))
	return w.Bytes()
}

// Package entity implements the v3 entity packers (C6): fixed-size binary
// records for ships, planets, starbases, ship targets, the general-state
// section, ship positions, and combat recordings. Every packer emits a
// record the same way the snapshot's value was described in §4.6: by
// writing fields in order onto a Cursor Writer sized exactly to the record.
package entity

import "github.com/nuforge/v3bridge/encoding"

// ShipRecordSize is the byte length of one owned-ship record.
const ShipRecordSize = 107

// Mission slots that route mission1target differently (§4.6, §4.9).
const (
	MissionTow       = 6
	MissionIntercept = 7
)

// Cargo is the 5-field mineral+supply tuple carried by ships.
type Cargo struct {
	Neutronium int
	Tritanium  int
	Duranium   int
	Molybdenum int
	Supplies   int
}

// TransferBlock is one 7-field unload/transfer block on a ship record.
type TransferBlock struct {
	TargetID   int
	TargetType int
	Neutronium int
	Tritanium  int
	Duranium   int
	Molybdenum int
	Supplies   int
}

// Ship is the packer-facing view of one owned ship, already translated
// through owner/race mapping and mission routing.
type Ship struct {
	ID             int
	Race           int
	FCode          string
	Warp           int
	Dx             int16
	Dy             int16
	X              int
	Y              int
	Engine         int
	Hull           int
	Beam           int
	Beams          int
	Bays           int
	TorpedoID      int
	Ammo           int
	Torps          int
	Mission        int // v3 1-based mission
	PrimaryEnemy   int
	Mission1Target int
	Mission2Target int
	Damage         int
	Crew           int
	Clans          int
	Name           string
	Cargo          Cargo
	Unload         TransferBlock
	Transfer       TransferBlock
	Megacredits    int
}

// RouteMission1Target applies §3 invariant 7: mission1target only carries a
// value into the v3 record for Tow/Intercept, each into its own slot.
func RouteMission1Target(snapshotMission, snapshotTarget int) (mission1, mission2 int) {
	switch snapshotMission {
	case MissionTow:
		return snapshotTarget, 0
	case MissionIntercept:
		return 0, snapshotTarget
	default:
		return 0, 0
	}
}

// UnrouteMission1Target is the inverse used by maketurn: given the v3
// record's mission1/mission2 target fields and the (already 0-based)
// mission number, recover the snapshot's single mission1target field.
func UnrouteMission1Target(snapshotMission, mission1, mission2 int) int {
	switch snapshotMission {
	case MissionTow:
		return mission1
	case MissionIntercept:
		return mission2
	default:
		return 0
	}
}

// writeTransferBlock writes one 7-field unload/transfer block (14 bytes) as
// given. Deciding which block is populated (target type 1 planet or 3
// jettison for the unload block) is left to the caller; a zero-value block
// writes 14 zero bytes.
func writeTransferBlock(w *encoding.Writer, t TransferBlock) {
	w.U16(uint16(t.TargetID))
	w.U16(uint16(t.TargetType))
	w.U16(uint16(t.Neutronium))
	w.U16(uint16(t.Tritanium))
	w.U16(uint16(t.Duranium))
	w.U16(uint16(t.Molybdenum))
	w.U16(uint16(t.Supplies))
}

// Pack renders the .dat/.dis record for an owned ship.
func (s Ship) Pack() []byte {
	w := encoding.NewWriter(ShipRecordSize)
	w.U16(uint16(s.ID))
	w.U16(uint16(s.Race))
	w.Str(3, s.FCode)
	w.U16(uint16(s.Warp))
	w.I16(s.Dx)
	w.I16(s.Dy)
	w.U16(uint16(s.X))
	w.U16(uint16(s.Y))
	w.U16(uint16(s.Engine))
	w.U16(uint16(s.Hull))
	w.U16(uint16(s.Beam))
	w.U16(uint16(s.Beams))
	w.U16(uint16(s.Bays))
	w.U16(uint16(s.TorpedoID))
	w.U16(uint16(s.Ammo))
	w.U16(uint16(s.Torps))
	w.U16(uint16(s.Mission))
	w.U16(uint16(s.PrimaryEnemy))
	w.U16(uint16(s.Mission1Target))
	w.U16(uint16(s.Damage))
	w.U16(uint16(s.Crew))
	w.U16(uint16(s.Clans))
	w.Str(20, s.Name)
	w.U16(uint16(s.Cargo.Neutronium))
	w.U16(uint16(s.Cargo.Tritanium))
	w.U16(uint16(s.Cargo.Duranium))
	w.U16(uint16(s.Cargo.Molybdenum))
	w.U16(uint16(s.Cargo.Supplies))
	writeTransferBlock(w, s.Unload)
	writeTransferBlock(w, s.Transfer)
	w.U16(uint16(s.Mission2Target))
	w.U16(uint16(s.Megacredits))
	return w.Bytes()
}

// UnpackShip is the inverse of Pack, used by maketurn to read a client's
// edited ship.dat record.
func UnpackShip(data []byte) (Ship, error) {
	r := encoding.NewReader(data)
	var s Ship
	s.ID = int(r.U16())
	s.Race = int(r.U16())
	s.FCode = r.Str(3)
	s.Warp = int(r.U16())
	s.Dx = r.I16()
	s.Dy = r.I16()
	s.X = int(r.U16())
	s.Y = int(r.U16())
	s.Engine = int(r.U16())
	s.Hull = int(r.U16())
	s.Beam = int(r.U16())
	s.Beams = int(r.U16())
	s.Bays = int(r.U16())
	s.TorpedoID = int(r.U16())
	s.Ammo = int(r.U16())
	s.Torps = int(r.U16())
	s.Mission = int(r.U16())
	s.PrimaryEnemy = int(r.U16())
	s.Mission1Target = int(r.U16())
	s.Damage = int(r.U16())
	s.Crew = int(r.U16())
	s.Clans = int(r.U16())
	s.Name = r.Str(20)
	s.Cargo.Neutronium = int(r.U16())
	s.Cargo.Tritanium = int(r.U16())
	s.Cargo.Duranium = int(r.U16())
	s.Cargo.Molybdenum = int(r.U16())
	s.Cargo.Supplies = int(r.U16())
	s.Unload = readTransferBlock(r)
	s.Transfer = readTransferBlock(r)
	s.Mission2Target = int(r.U16())
	s.Megacredits = int(r.U16())
	return s, r.Err()
}

func readTransferBlock(r *encoding.Reader) TransferBlock {
	return TransferBlock{
		TargetID:   int(r.U16()),
		TargetType: int(r.U16()),
		Neutronium: int(r.U16()),
		Tritanium:  int(r.U16()),
		Duranium:   int(r.U16()),
		Molybdenum: int(r.U16()),
		Supplies:   int(r.U16()),
	}
}

package entity

import "github.com/nuforge/v3bridge/encoding"

// PlanetRecordSize is the byte length of one planet record.
const PlanetRecordSize = 85

// TempCode encodes a snapshot temperature per §4.6: 100-temp when the
// temperature is known (>=0), or the -1 sentinel when unknown.
func TempCode(temp int) int {
	if temp < 0 {
		return -1
	}
	return 100 - temp
}

// Ground is the 4-field mineral concentration or density tuple on a planet.
type Ground struct {
	Neutronium int
	Tritanium  int
	Duranium   int
	Molybdenum int
}

// Planet is the packer-facing view of one planet record.
type Planet struct {
	Owner            int
	ID               int
	FCode            string
	Mines            int
	Factories        int
	Defense          int
	Neutronium       int
	Tritanium        int
	Duranium         int
	Molybdenum       int
	Clans            int
	Supplies         int
	Megacredits      int
	Ground           Ground
	Density          Ground
	ColTax           int
	NatTax           int
	ColHappy         int
	NatHappy         int
	NatGov           int
	NatClans         int
	NatType          int
	Temp             int
	BuildingStarbase bool
}

// Included reports whether this planet is emitted at all: friendly code
// other than the default, or any semantically populated field.
func (p Planet) Included() bool {
	if p.FCode != "" && p.FCode != "???" {
		return true
	}
	return p.Owner != 0 || p.Mines != 0 || p.Factories != 0 || p.Defense != 0 ||
		p.Neutronium != 0 || p.Tritanium != 0 || p.Duranium != 0 || p.Molybdenum != 0 ||
		p.Clans != 0 || p.Supplies != 0 || p.Megacredits != 0 ||
		p.Ground.Neutronium != 0 || p.Ground.Tritanium != 0 || p.Ground.Duranium != 0 || p.Ground.Molybdenum != 0 ||
		p.ColTax != 0 || p.NatTax != 0 || p.ColHappy != 0 || p.NatHappy != 0 ||
		p.NatGov != 0 || p.NatClans != 0 || p.NatType != 0 || p.BuildingStarbase
}

// Pack renders the pdata<N>.dat/.dis record for one planet.
func (p Planet) Pack() []byte {
	w := encoding.NewWriter(PlanetRecordSize)
	w.U16(uint16(p.Owner))
	w.U16(uint16(p.ID))
	w.Str(3, p.FCode)
	w.U16(uint16(p.Mines))
	w.U16(uint16(p.Factories))
	w.U16(uint16(p.Defense))
	w.U32(uint32(p.Neutronium))
	w.U32(uint32(p.Tritanium))
	w.U32(uint32(p.Duranium))
	w.U32(uint32(p.Molybdenum))
	w.U32(uint32(p.Clans))
	w.U32(uint32(p.Supplies))
	w.U32(uint32(p.Megacredits))
	w.U32(uint32(p.Ground.Neutronium))
	w.U32(uint32(p.Ground.Tritanium))
	w.U32(uint32(p.Ground.Duranium))
	w.U32(uint32(p.Ground.Molybdenum))
	w.U16(uint16(p.Density.Neutronium))
	w.U16(uint16(p.Density.Tritanium))
	w.U16(uint16(p.Density.Duranium))
	w.U16(uint16(p.Density.Molybdenum))
	w.U16(uint16(p.ColTax))
	w.U16(uint16(p.NatTax))
	w.U16(uint16(p.ColHappy))
	w.U16(uint16(p.NatHappy))
	w.U16(uint16(p.NatGov))
	w.U32(uint32(p.NatClans))
	w.U16(uint16(p.NatType))
	w.I16(int16(TempCode(p.Temp)))
	w.U16(boolToU16(p.BuildingStarbase))
	return w.Bytes()
}

func boolToU16(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// UnpackPlanet is the inverse of Pack.
func UnpackPlanet(data []byte) (Planet, error) {
	r := encoding.NewReader(data)
	var p Planet
	p.Owner = int(r.U16())
	p.ID = int(r.U16())
	p.FCode = r.Str(3)
	p.Mines = int(r.U16())
	p.Factories = int(r.U16())
	p.Defense = int(r.U16())
	p.Neutronium = int(r.U32())
	p.Tritanium = int(r.U32())
	p.Duranium = int(r.U32())
	p.Molybdenum = int(r.U32())
	p.Clans = int(r.U32())
	p.Supplies = int(r.U32())
	p.Megacredits = int(r.U32())
	p.Ground.Neutronium = int(r.U32())
	p.Ground.Tritanium = int(r.U32())
	p.Ground.Duranium = int(r.U32())
	p.Ground.Molybdenum = int(r.U32())
	p.Density.Neutronium = int(r.U16())
	p.Density.Tritanium = int(r.U16())
	p.Density.Duranium = int(r.U16())
	p.Density.Molybdenum = int(r.U16())
	p.ColTax = int(r.U16())
	p.NatTax = int(r.U16())
	p.ColHappy = int(r.U16())
	p.NatHappy = int(r.U16())
	p.NatGov = int(r.U16())
	p.NatClans = int(r.U32())
	p.NatType = int(r.U16())
	tempCode := r.I16()
	if tempCode == -1 {
		p.Temp = -1
	} else {
		p.Temp = 100 - int(tempCode)
	}
	p.BuildingStarbase = r.U16() != 0
	return p, r.Err()
}

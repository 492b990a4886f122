package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPackMinimalShipMatchesSampleRecord pins the boundary scenario: a ship
// with no cargo at (1000,1000), hull 1, engine 1, must begin with the exact
// byte sequence the scenario names.
func TestPackMinimalShipMatchesSampleRecord(t *testing.T) {
	s := Ship{
		ID:     1,
		Race:   1,
		FCode:  "",
		Engine: 1,
		Hull:   1,
		X:      1000,
		Y:      1000,
	}
	data := s.Pack()
	require.Len(t, data, ShipRecordSize)

	expected := []byte{
		0x01, 0x00, // id
		0x01, 0x00, // race
		0x20, 0x20, 0x20, // fcode "   "
		0x00, 0x00, // warp
		0x00, 0x00, // dx
		0x00, 0x00, // dy
		0xE8, 0x03, // x=1000
		0xE8, 0x03, // y=1000
		0x01, 0x00, // engine
		0x01, 0x00, // hull
	}
	assert.Equal(t, expected, data[:len(expected)])
}

func TestShipRoundTrip(t *testing.T) {
	s := Ship{
		ID: 42, Race: 3, FCode: "abc", Warp: 6, Dx: -5, Dy: 7, X: 2000, Y: 1500,
		Engine: 9, Hull: 4, Beam: 2, Beams: 3, Bays: 0, TorpedoID: 5, Ammo: 10,
		Torps: 10, Mission: 1, PrimaryEnemy: 2, Mission1Target: 0, Damage: 0,
		Crew: 100, Clans: 0, Name: "USS Enterprise that is a long name",
		Cargo:       Cargo{Neutronium: 1, Tritanium: 2, Duranium: 3, Molybdenum: 4, Supplies: 5},
		Megacredits: 1000,
	}
	data := s.Pack()
	got, err := UnpackShip(data)
	require.NoError(t, err)

	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Dx, got.Dx)
	assert.Equal(t, s.Dy, got.Dy)
	assert.Equal(t, "abc", got.FCode)
	assert.Equal(t, "USS Enterprise that", got.Name)
	assert.Equal(t, s.Cargo, got.Cargo)
	assert.Equal(t, s.Megacredits, got.Megacredits)
}

func TestMissionRoutingTowAndIntercept(t *testing.T) {
	m1, m2 := RouteMission1Target(MissionTow, 42)
	assert.Equal(t, 42, m1)
	assert.Equal(t, 0, m2)

	m1, m2 = RouteMission1Target(MissionIntercept, 17)
	assert.Equal(t, 0, m1)
	assert.Equal(t, 17, m2)

	assert.Equal(t, 42, UnrouteMission1Target(MissionTow, 42, 0))
	assert.Equal(t, 17, UnrouteMission1Target(MissionIntercept, 0, 17))
}

func TestMissionRoutingOtherMissionsAreZero(t *testing.T) {
	m1, m2 := RouteMission1Target(1, 99)
	assert.Equal(t, 0, m1)
	assert.Equal(t, 0, m2)
}

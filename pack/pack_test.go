package pack

import (
	"testing"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/encoding"
	"github.com/nuforge/v3bridge/entity"
	"github.com/nuforge/v3bridge/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Player:  snapshot.Player{RaceID: 3},
		Game:    snapshot.Game{ID: 1, Turn: 12},
		Players: []snapshot.PlayerRef{{ID: 1, RaceID: 3}},
	}
}

func TestPackRejectsSnapshotWithoutLocalRace(t *testing.T) {
	snap := &snapshot.Snapshot{}
	_, err := Pack(snap, config.Config{})
	require.Error(t, err)
}

func TestPackControlVectorMatchesPackedRecordChecksums(t *testing.T) {
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{
		{ID: 1, Owner: 1, X: 1000, Y: 1000, FCode: "abc", Mines: 10, Temp: 50},
	}
	snap.Ships = []snapshot.Ship{
		{ID: 1, Owner: 1, FCode: "xyz", Warp: 1, X: 1000, Y: 1000, Engine: 1, Hull: 1, Name: "Scout"},
	}

	result, err := Pack(snap, config.Config{})
	require.NoError(t, err)

	planetDat := result.Builder.Files["pdata3.dat"]
	require.Len(t, planetDat, entity.PlanetRecordSize)
	assert.Equal(t, encoding.AdditiveByteSum(planetDat), result.Control.At(PlanetSlot(1)))

	shipDat := result.Builder.Files["ship3.dat"]
	require.Len(t, shipDat, entity.ShipRecordSize)
	assert.Equal(t, encoding.AdditiveByteSum(shipDat), result.Control.At(ShipSlot(1)))
}

func TestPackMineBuildLeavesRecoverableResidualInDis(t *testing.T) {
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{
		{ID: 1, Owner: 1, X: 1000, Y: 1000, FCode: "abc", Mines: 20, BuiltMines: 10, Supplies: 90, Megacredits: 170},
	}

	result, err := Pack(snap, config.Config{})
	require.NoError(t, err)

	disBuf := result.Builder.Files["pdata3.dis"]
	dis, err := entity.UnpackPlanet(disBuf)
	require.NoError(t, err)
	assert.Equal(t, 10, dis.Mines)
	assert.Equal(t, 100, dis.Supplies)
	assert.Equal(t, 210, dis.Megacredits)
	assert.True(t, result.Ledger.IsEmpty())
}

func TestPackExcludesPlanetWithDefaultFCodeAndNoActivity(t *testing.T) {
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{
		{ID: 1, Owner: 0, FCode: "???"},
		{ID: 2, Owner: 1, FCode: "???", Mines: 5},
	}

	result, err := Pack(snap, config.Config{})
	require.NoError(t, err)

	datBuf := result.Builder.Files["pdata3.dat"]
	assert.Len(t, datBuf, entity.PlanetRecordSize)
	planet, err := entity.UnpackPlanet(datBuf)
	require.NoError(t, err)
	assert.Equal(t, 2, planet.ID)
}

func TestPackForeignShipGoesToTargetFile(t *testing.T) {
	snap := baseSnapshot()
	snap.Players = append(snap.Players, snapshot.PlayerRef{ID: 2, RaceID: 7})
	snap.Ships = []snapshot.Ship{
		{ID: 1, Owner: 1, Hull: 1, Name: "Mine"},
		{ID: 2, Owner: 2, Hull: 5, Name: "Theirs"},
	}

	result, err := Pack(snap, config.Config{})
	require.NoError(t, err)

	assert.Len(t, result.Builder.Files["ship3.dat"], entity.ShipRecordSize)
	assert.Len(t, result.Builder.Files["target3.dat"], entity.ShipTargetRecordSize)

	target, err := entity.UnpackShipTarget(result.Builder.Files["target3.dat"])
	require.NoError(t, err)
	assert.Equal(t, 7, target.Race)
}

func TestPackShipTransferBlockGating(t *testing.T) {
	cargo := snapshot.CargoTransfer{TargetID: 9, TargetType: 1, Supplies: 5}

	snap := baseSnapshot()
	snap.Ships = []snapshot.Ship{
		{ID: 1, Owner: 1, TransferTargetType: 1, Transfer1: cargo, Transfer2: cargo},
	}
	result, err := Pack(snap, config.Config{})
	require.NoError(t, err)
	packed, err := entity.UnpackShip(result.Builder.Files["ship3.dat"])
	require.NoError(t, err)
	assert.Equal(t, 9, packed.Unload.TargetID)
	assert.Equal(t, entity.TransferBlock{}, packed.Transfer)

	snap2 := baseSnapshot()
	snap2.Ships = []snapshot.Ship{
		{ID: 1, Owner: 1, TransferTargetType: 2, Transfer1: cargo, Transfer2: cargo},
	}
	result2, err := Pack(snap2, config.Config{})
	require.NoError(t, err)
	packed2, err := entity.UnpackShip(result2.Builder.Files["ship3.dat"])
	require.NoError(t, err)
	assert.Equal(t, entity.TransferBlock{}, packed2.Unload)
	assert.Equal(t, 9, packed2.Transfer.TargetID)

	snap3 := baseSnapshot()
	snap3.Ships = []snapshot.Ship{
		{ID: 1, Owner: 1, TransferTargetType: 0, Transfer1: cargo, Transfer2: cargo},
	}
	result3, err := Pack(snap3, config.Config{})
	require.NoError(t, err)
	packed3, err := entity.UnpackShip(result3.Builder.Files["ship3.dat"])
	require.NoError(t, err)
	assert.Equal(t, entity.TransferBlock{}, packed3.Unload)
	assert.Equal(t, entity.TransferBlock{}, packed3.Transfer)
}

func TestPackRunIsDeterministicGivenSameSnapshot(t *testing.T) {
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, FCode: "abc"}}

	r1, err := Pack(snap, config.Config{})
	require.NoError(t, err)
	r2, err := Pack(snap, config.Config{})
	require.NoError(t, err)

	assert.Equal(t, r1.Builder.Files["pdata3.dat"], r2.Builder.Files["pdata3.dat"])
	assert.Equal(t, r1.Control.Bytes(), r2.Control.Bytes())
}

func TestPackResultModeAssemblesSingleFile(t *testing.T) {
	snap := baseSnapshot()
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1, Hull: 1, Name: "Mine"}}
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, FCode: "abc"}}
	snap.Starbases = []snapshot.Starbase{{PlanetID: 1, Owner: 1}}

	result, err := Pack(snap, config.Config{Mode: config.ModeResult})
	require.NoError(t, err)

	rst, ok := result.Builder.Files["player3.rst"]
	require.True(t, ok)
	_, hasDat := result.Builder.Files["ship3.dat"]
	assert.False(t, hasDat, "result mode must not also write the unpacked .dat tree")

	pos := 0
	shipCount := int(encoding.Read16(rst, pos))
	assert.Equal(t, 1, shipCount)
	pos += 2 + shipCount*entity.ShipRecordSize

	targetCount := int(encoding.Read16(rst, pos))
	assert.Equal(t, 0, targetCount)
	pos += 2 + targetCount*entity.ShipTargetRecordSize

	planetCount := int(encoding.Read16(rst, pos))
	assert.Equal(t, 1, planetCount)
	pos += 2 + planetCount*entity.PlanetRecordSize

	baseCount := int(encoding.Read16(rst, pos))
	assert.Equal(t, 1, baseCount)
	pos += 2 + baseCount*entity.StarbaseRecordSize

	assert.Less(t, pos, len(rst), "message/shipxy/gen/vcr tail should follow the four sections")
}

package maketurn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/entity"
	"github.com/nuforge/v3bridge/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageShip(t *testing.T, dir string, localRace int, ships ...entity.Ship) {
	t.Helper()
	var buf []byte
	for _, s := range ships {
		buf = append(buf, s.Pack()...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ship3.dat"), buf, 0o644))
	_ = localRace
}

func stagePlanet(t *testing.T, dir string, planets ...entity.Planet) {
	t.Helper()
	var buf []byte
	for _, p := range planets {
		buf = append(buf, p.Pack()...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pdata3.dat"), buf, 0o644))
}

func stageBase(t *testing.T, dir string, bases ...entity.Starbase) {
	t.Helper()
	var buf []byte
	for _, b := range bases {
		buf = append(buf, b.Pack()...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bdata3.dat"), buf, 0o644))
}

func baseSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Player:  snapshot.Player{RaceID: 3},
		Players: []snapshot.PlayerRef{{ID: 1, RaceID: 3}},
	}
}

func TestMaketurnRejectsSnapshotWithoutLocalRace(t *testing.T) {
	dir := t.TempDir()
	_, err := Maketurn(&snapshot.Snapshot{}, config.Config{WorkingDir: dir})
	require.Error(t, err)
}

func TestMaketurnPrimaryEnemyUnknownSlotFallsBackToZero(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1, X: 1000, Y: 1000, Ammo: 0, Torps: 0}}
	stageShip(t, dir, 3, entity.Ship{ID: 1, Race: 3, X: 1000, Y: 1000, PrimaryEnemy: 9})
	stagePlanet(t, dir)
	stageBase(t, dir)

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Commands, 1)
	assert.Contains(t, result.Commands[0], "primaryenemy:::0")
}

func TestMaketurnNameTruncationKeepsLongerOriginal(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	longName := "USS Enterprise that is a long name"
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1, Name: snapshot.SBString(longName)}}
	stageShip(t, dir, 3, entity.Ship{ID: 1, Race: 3, Name: "USS Enterprise that"})
	stagePlanet(t, dir)
	stageBase(t, dir)

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Commands, 1)
	assert.Contains(t, result.Commands[0], "name:::"+longName)
}

func TestMaketurnNameChangedKeepsNewName(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1, Name: "Old Name"}}
	stageShip(t, dir, 3, entity.Ship{ID: 1, Race: 3, Name: "New Name"})
	stagePlanet(t, dir)
	stageBase(t, dir)

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	assert.Contains(t, result.Commands[0], "name:::New Name")
}

func TestMaketurnMissionTargetRoutingRestoresTowTarget(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1, Mission: entity.MissionTow, Mission1Target: 42}}
	m1, m2 := entity.RouteMission1Target(entity.MissionTow, 42)
	stageShip(t, dir, 3, entity.Ship{ID: 1, Race: 3, Mission: entity.MissionTow + 1, Mission1Target: m1, Mission2Target: m2})
	stagePlanet(t, dir)
	stageBase(t, dir)

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	assert.Contains(t, result.Commands[0], "mission1target:::42")
}

func TestMaketurnConflictingUnloadAndTransferDropsTransfer(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1}}
	stageShip(t, dir, 3, entity.Ship{
		ID: 1, Race: 3,
		Unload:   entity.TransferBlock{TargetID: 5, TargetType: 1, Supplies: 10},
		Transfer: entity.TransferBlock{TargetID: 7, TargetType: 2, Supplies: 20},
	})
	stagePlanet(t, dir)
	stageBase(t, dir)

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	assert.Contains(t, result.Commands[0], "transfer1targetid:::5")
	assert.Contains(t, result.Commands[0], "transfer2targettype:::0")
	assert.NotContains(t, result.Commands[0], "transfer2targetid:::7")
}

func TestMaketurnPlanetSuppliesSoldRecompute(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, X: 1000, Y: 1000, Mines: 10, Supplies: 100, SuppliesSold: 0}}
	stageShip(t, dir, 3)
	stagePlanet(t, dir, entity.Planet{Owner: 3, ID: 1, Mines: 20, Supplies: 80})
	stageBase(t, dir)

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Commands, 1)
	// builtMines=10, deltaStructures=10*1=10; suppliesSold = 100+0-80-10 = 10
	assert.Contains(t, result.Commands[0], "suppliessold:::10")
	assert.Contains(t, result.Commands[0], "builtmines:::10")
}

func TestMaketurnStockReconciliationUpdatesExistingRecord(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, X: 1000, Y: 1000}}
	snap.Starbases = []snapshot.Starbase{{PlanetID: 1, Owner: 1}}
	snap.Stock = []snapshot.Stock{
		{ID: 100, BaseID: 1, StockType: snapshot.StockHull, StockID: 1, Amount: 5, BuiltAmount: 0},
	}
	var hullStock [20]int
	hullStock[0] = 8
	stageShip(t, dir, 3)
	stagePlanet(t, dir, entity.Planet{Owner: 3, ID: 1})
	stageBase(t, dir, entity.Starbase{PlanetID: 1, Race: 3, HullStock: hullStock})

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	found := false
	for _, c := range result.Commands {
		if c == "stock100=baseid:::1|||stocktype:::1|||stockid:::1|||amount:::8|||builtamount:::3" {
			found = true
		}
	}
	assert.True(t, found, "expected updated stock100 command, got %v", result.Commands)
	assert.False(t, result.NewStock)
}

func TestMaketurnStockReconciliationAllocatesSurrogateID(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, X: 1000, Y: 1000}}
	snap.Starbases = []snapshot.Starbase{{PlanetID: 1, Owner: 1}}
	snap.Stock = []snapshot.Stock{
		{ID: 100, BaseID: 1, StockType: snapshot.StockHull, StockID: 1, Amount: 5},
	}
	var beamStock [10]int
	beamStock[0] = 3
	stageShip(t, dir, 3)
	stagePlanet(t, dir, entity.Planet{Owner: 3, ID: 1})
	stageBase(t, dir, entity.Starbase{PlanetID: 1, Race: 3, BeamStock: beamStock})

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	assert.True(t, result.NewStock)

	found := false
	for _, c := range result.Commands {
		if c == "stock101=baseid:::1|||stocktype:::3|||stockid:::1|||amount:::3|||builtamount:::3" {
			found = true
		}
	}
	assert.True(t, found, "expected new stock101 command with surrogate id beyond existing max, got %v", result.Commands)
}

func TestMaketurnBaseFighterBuildConsumedByOrbitingShip(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, X: 1000, Y: 1000}}
	snap.Starbases = []snapshot.Starbase{{PlanetID: 1, Owner: 1, Fighters: 10}}
	snap.Ships = []snapshot.Ship{{ID: 1, Owner: 1, X: 1000, Y: 1000, Ammo: 5}}

	stageShip(t, dir, 3, entity.Ship{ID: 1, Race: 3, X: 1000, Y: 1000, Bays: 2, Ammo: 8})
	stagePlanet(t, dir, entity.Planet{Owner: 3, ID: 1})
	stageBase(t, dir, entity.Starbase{PlanetID: 1, Race: 3, Fighters: 13})

	result, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	// base built 3 fighters (13-10); ship picked up 3 (8-5); residual should be fully reclaimed.
	assert.True(t, result.Ledger.IsEmpty())
}

func TestMaketurnMissingFileIsIOError(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	_, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.Error(t, err)
}

func TestMaketurnRunIsDeterministicGivenSameInputs(t *testing.T) {
	dir := t.TempDir()
	snap := baseSnapshot()
	snap.Planets = []snapshot.Planet{{ID: 1, Owner: 1, X: 1000, Y: 1000}}
	stageShip(t, dir, 3)
	stagePlanet(t, dir, entity.Planet{Owner: 3, ID: 1, Mines: 5})
	stageBase(t, dir)

	r1, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	r2, err := Maketurn(snap, config.Config{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, r1.Commands, r2.Commands)
}

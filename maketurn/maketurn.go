// Package maketurn implements the maketurn pipeline (C9) and stock
// reconciliation (C11): reading the v3 tree a client has edited, diffing it
// against the original snapshot, and producing the command records the
// server consumes as this turn's orders.
package maketurn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/entity"
	"github.com/nuforge/v3bridge/errs"
	"github.com/nuforge/v3bridge/ledger"
	"github.com/nuforge/v3bridge/log"
	"github.com/nuforge/v3bridge/ownermap"
	"github.com/nuforge/v3bridge/snapshot"
)

// mineSupplyCost mirrors pack's calibration (§8 S2, see DESIGN.md Open
// Question #6) so the supplies-sold recompute subtracts the same
// structure cost pack charged when it built the mines being undone here.
const mineSupplyCost = 1

// Result is everything one Maketurn call produces.
type Result struct {
	Commands []string
	Ledger   *ledger.Ledger
	// NewStock reports whether any stock record lacked a snapshot
	// counterpart and was given a surrogate id. The caller should warn the
	// player a re-download is advisable (§4.9 step 5).
	NewStock bool
}

// Maketurn runs the full pipeline (§4.9) against the client-edited v3 tree
// in cfg.WorkingDir, diffed against the original snapshot.
func Maketurn(snap *snapshot.Snapshot, cfg config.Config) (*Result, error) {
	if snap.Player.RaceID == 0 {
		return nil, errs.New(errs.InputShape, "snapshot.player.raceid is required")
	}
	localRace := snap.Player.RaceID
	om := ownermap.New(snap.Players)

	ships, err := loadShips(cfg.WorkingDir, localRace)
	if err != nil {
		return nil, err
	}
	planets, err := loadPlanets(cfg.WorkingDir, localRace)
	if err != nil {
		return nil, err
	}
	bases, err := loadBases(cfg.WorkingDir, localRace)
	if err != nil {
		return nil, err
	}

	planetByID := indexPlanets(snap.Planets)
	shipByID := indexShips(snap.Ships)
	baseByPlanetID := indexBases(snap.Starbases)
	stockIndex := indexStock(snap.Stock)
	allocator := newStockAllocator(snap.Stock)

	led := ledger.New()

	// Step 3: re-derive per-base torp/fighter-built counters, then let each
	// orbiting owned ship's ammo delta reclaim its share. Order matters:
	// every base must credit its counters before any ship consumes them.
	for _, base := range bases {
		orig, ok := baseByPlanetID[base.PlanetID]
		if !ok {
			continue
		}
		planet, ok := planetByID[base.PlanetID]
		if !ok {
			continue
		}
		c := led.At(planet.X, planet.Y)
		c.AddFightersBuilt(base.Fighters - orig.Fighters)
		for i, newAmount := range base.TorpStock {
			oldAmount := 0
			if s, ok := stockIndex[stockKey{base.PlanetID, snapshot.StockTorpedo, i + 1}]; ok {
				oldAmount = s.Amount
			}
			c.AddTorpBuilt(i, newAmount-oldAmount)
		}
	}
	for _, s := range ships {
		orig, ok := shipByID[s.ID]
		if !ok {
			continue
		}
		c := led.At(orig.X, orig.Y)
		if delta := s.Ammo - orig.Ammo; delta > 0 && s.Bays > 0 {
			c.ConsumeFightersBuilt(delta)
		}
		if delta := s.Torps - orig.Torps; delta > 0 && s.TorpedoID > 0 {
			c.ConsumeTorpBuilt(s.TorpedoID-1, delta)
		}
	}

	var commands []string
	newStock := false

	for _, s := range ships {
		orig, ok := shipByID[s.ID]
		if !ok {
			continue
		}
		commands = append(commands, serializeShip(s, orig, om).String())
	}

	for _, p := range planets {
		orig, ok := planetByID[p.ID]
		if !ok {
			continue
		}
		commands = append(commands, serializePlanet(p, orig, om).String())
	}

	for _, b := range bases {
		orig, ok := baseByPlanetID[b.PlanetID]
		if !ok {
			continue
		}
		commands = append(commands, serializeBase(b, orig, om).String())
		stockCmds, allocated := reconcileStock(b, stockIndex, allocator)
		for _, sc := range stockCmds {
			commands = append(commands, sc.String())
		}
		newStock = newStock || allocated
	}

	if residuals := led.Residuals(); len(residuals) > 0 {
		log.Warn("maketurn flow ledger has non-zero residuals", log.F("count", len(residuals)))
	}
	if newStock {
		log.Warn("maketurn allocated new stock ids; a re-download is advisable")
	}

	return &Result{Commands: commands, Ledger: led, NewStock: newStock}, nil
}

func readV3File(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, errs.Wrap(errs.IO, fmt.Sprintf("reading %s", name), err)
	}
	return data, nil
}

func loadShips(dir string, localRace int) ([]entity.Ship, error) {
	data, err := readV3File(dir, fmt.Sprintf("ship%d.dat", localRace))
	if err != nil {
		return nil, err
	}
	if len(data)%entity.ShipRecordSize != 0 {
		return nil, errs.New(errs.FormatMismatch, fmt.Sprintf("ship%d.dat size %d is not a multiple of %d", localRace, len(data), entity.ShipRecordSize))
	}
	var out []entity.Ship
	for off := 0; off < len(data); off += entity.ShipRecordSize {
		s, err := entity.UnpackShip(data[off : off+entity.ShipRecordSize])
		if err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "ship record", err)
		}
		if s.Race != localRace {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func loadPlanets(dir string, localRace int) ([]entity.Planet, error) {
	data, err := readV3File(dir, fmt.Sprintf("pdata%d.dat", localRace))
	if err != nil {
		return nil, err
	}
	if len(data)%entity.PlanetRecordSize != 0 {
		return nil, errs.New(errs.FormatMismatch, fmt.Sprintf("pdata%d.dat size %d is not a multiple of %d", localRace, len(data), entity.PlanetRecordSize))
	}
	var out []entity.Planet
	for off := 0; off < len(data); off += entity.PlanetRecordSize {
		p, err := entity.UnpackPlanet(data[off : off+entity.PlanetRecordSize])
		if err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "planet record", err)
		}
		if p.Owner != localRace {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func loadBases(dir string, localRace int) ([]entity.Starbase, error) {
	data, err := readV3File(dir, fmt.Sprintf("bdata%d.dat", localRace))
	if err != nil {
		return nil, err
	}
	if len(data)%entity.StarbaseRecordSize != 0 {
		return nil, errs.New(errs.FormatMismatch, fmt.Sprintf("bdata%d.dat size %d is not a multiple of %d", localRace, len(data), entity.StarbaseRecordSize))
	}
	var out []entity.Starbase
	for off := 0; off < len(data); off += entity.StarbaseRecordSize {
		b, err := entity.UnpackStarbase(data[off : off+entity.StarbaseRecordSize])
		if err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "starbase record", err)
		}
		if b.Race != localRace {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func indexPlanets(planets []snapshot.Planet) map[int]snapshot.Planet {
	out := make(map[int]snapshot.Planet, len(planets))
	for _, p := range planets {
		out[p.ID] = p
	}
	return out
}

func indexShips(ships []snapshot.Ship) map[int]snapshot.Ship {
	out := make(map[int]snapshot.Ship, len(ships))
	for _, s := range ships {
		out[s.ID] = s
	}
	return out
}

func indexBases(bases []snapshot.Starbase) map[int]snapshot.Starbase {
	out := make(map[int]snapshot.Starbase, len(bases))
	for _, b := range bases {
		out[b.PlanetID] = b
	}
	return out
}

type stockKey struct {
	BaseID    int
	StockType int
	StockID   int
}

func indexStock(stock []snapshot.Stock) map[stockKey]snapshot.Stock {
	out := make(map[stockKey]snapshot.Stock, len(stock))
	for _, s := range stock {
		out[stockKey{s.BaseID, s.StockType, s.StockID}] = s
	}
	return out
}

// serializeShip applies the four field-level rules of §4.9 and emits the
// ship's command record.
func serializeShip(s entity.Ship, orig snapshot.Ship, om *ownermap.Map) *Command {
	owner := om.Owner(s.Race)

	primaryEnemy := om.Owner(s.PrimaryEnemy)
	if s.PrimaryEnemy != 0 && primaryEnemy == 0 {
		log.Warn("ship primary enemy references unknown race slot", log.F("ship", s.ID), log.F("slot", s.PrimaryEnemy))
	}

	name := s.Name
	// The record's name field comes back space-trimmed (ReadFixedString), so
	// the truncated original is trimmed the same way before comparing.
	if strings.TrimRight(truncate20(string(orig.Name)), " \x00") == s.Name {
		name = string(orig.Name)
	}

	snapshotMission := s.Mission - 1
	mission1Target := entity.UnrouteMission1Target(snapshotMission, s.Mission1Target, s.Mission2Target)

	unload, transfer := s.Unload, s.Transfer
	if unload.TargetType == 3 && orig.Transfer1.TargetType != 3 {
		log.Warn("ship shows a new jettison order the snapshot didn't originate", log.F("ship", s.ID))
	}
	if transferPopulated(unload) && transferPopulated(transfer) {
		log.Warn("ship has conflicting unload and transfer orders; dropping transfer", log.F("ship", s.ID))
		transfer = entity.TransferBlock{}
	}

	cmd := NewCommand("ship", s.ID)
	cmd.Set("ownerid", owner)
	cmd.Set("fcode", s.FCode)
	cmd.Set("warp", s.Warp)
	cmd.Set("dx", int(s.Dx))
	cmd.Set("dy", int(s.Dy))
	cmd.Set("x", s.X)
	cmd.Set("y", s.Y)
	cmd.Set("engineid", s.Engine)
	cmd.Set("hullid", s.Hull)
	cmd.Set("beamid", s.Beam)
	cmd.Set("beams", s.Beams)
	cmd.Set("bays", s.Bays)
	cmd.Set("torpedoid", s.TorpedoID)
	cmd.Set("ammo", s.Ammo)
	cmd.Set("torps", s.Torps)
	cmd.Set("mission", snapshotMission)
	cmd.Set("primaryenemy", primaryEnemy)
	cmd.Set("mission1target", mission1Target)
	cmd.Set("damage", s.Damage)
	cmd.Set("crew", s.Crew)
	cmd.Set("clans", s.Clans)
	cmd.Set("name", name)
	cmd.Set("neutronium", s.Cargo.Neutronium)
	cmd.Set("tritanium", s.Cargo.Tritanium)
	cmd.Set("duranium", s.Cargo.Duranium)
	cmd.Set("molybdenum", s.Cargo.Molybdenum)
	cmd.Set("supplies", s.Cargo.Supplies)
	cmd.Set("megacredits", s.Megacredits)
	setTransferFields(cmd, "transfer1", unload)
	setTransferFields(cmd, "transfer2", transfer)
	cmd.PassThrough(orig.Extra)
	return cmd
}

func setTransferFields(cmd *Command, prefix string, t entity.TransferBlock) {
	cmd.Set(prefix+"targetid", t.TargetID)
	cmd.Set(prefix+"targettype", t.TargetType)
	cmd.Set(prefix+"neutronium", t.Neutronium)
	cmd.Set(prefix+"tritanium", t.Tritanium)
	cmd.Set(prefix+"duranium", t.Duranium)
	cmd.Set(prefix+"molybdenum", t.Molybdenum)
	cmd.Set(prefix+"supplies", t.Supplies)
}

func transferPopulated(t entity.TransferBlock) bool {
	return t.TargetType != 0 || t.Neutronium != 0 || t.Tritanium != 0 ||
		t.Duranium != 0 || t.Molybdenum != 0 || t.Supplies != 0
}

func truncate20(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}

// serializePlanet recomputes supplies-sold (§4.9 step 3) and emits the
// planet's command record.
func serializePlanet(p entity.Planet, orig snapshot.Planet, om *ownermap.Map) *Command {
	builtMines := p.Mines - orig.Mines
	builtFactories := p.Factories - orig.Factories
	builtDefense := p.Defense - orig.Defense
	deltaStructures := builtMines * mineSupplyCost

	suppliesSold := orig.Supplies + orig.SuppliesSold - p.Supplies - deltaStructures

	cmd := NewCommand("planet", p.ID)
	cmd.Set("ownerid", om.Owner(p.Owner))
	cmd.Set("x", orig.X)
	cmd.Set("y", orig.Y)
	cmd.Set("fcode", p.FCode)
	cmd.Set("mines", p.Mines)
	cmd.Set("factories", p.Factories)
	cmd.Set("defense", p.Defense)
	cmd.Set("neutronium", p.Neutronium)
	cmd.Set("tritanium", p.Tritanium)
	cmd.Set("duranium", p.Duranium)
	cmd.Set("molybdenum", p.Molybdenum)
	cmd.Set("clans", p.Clans)
	cmd.Set("supplies", p.Supplies)
	cmd.Set("suppliessold", suppliesSold)
	cmd.Set("megacredits", p.Megacredits)
	cmd.Set("groundneutronium", p.Ground.Neutronium)
	cmd.Set("groundtritanium", p.Ground.Tritanium)
	cmd.Set("groundduranium", p.Ground.Duranium)
	cmd.Set("groundmolybdenum", p.Ground.Molybdenum)
	cmd.Set("colonisttaxrate", p.ColTax)
	cmd.Set("nativetaxrate", p.NatTax)
	cmd.Set("colonisthappypoints", p.ColHappy)
	cmd.Set("nativehappypoints", p.NatHappy)
	cmd.Set("nativegovernment", p.NatGov)
	cmd.Set("nativeclans", p.NatClans)
	cmd.Set("nativetype", p.NatType)
	cmd.Set("temp", p.Temp)
	cmd.Set("buildingstarbase", p.BuildingStarbase)
	cmd.Set("builtmines", builtMines)
	cmd.Set("builtfactories", builtFactories)
	cmd.Set("builtdefense", builtDefense)
	cmd.PassThrough(orig.Extra)
	return cmd
}

func serializeBase(b entity.Starbase, orig snapshot.Starbase, om *ownermap.Map) *Command {
	cmd := NewCommand("base", b.PlanetID)
	cmd.Set("ownerid", om.Owner(b.Race))
	cmd.Set("defense", b.Defense)
	cmd.Set("damage", b.Damage)
	cmd.Set("fighters", b.Fighters)
	cmd.Set("targetshipid", b.TargetShipID)
	cmd.Set("shipmission", b.ShipMission)
	cmd.Set("mission", b.Mission)
	cmd.Set("buildslot", b.BuildSlot)
	cmd.Set("buildengineid", b.BuildEngine)
	cmd.Set("buildbeamid", b.BuildBeam)
	cmd.Set("buildbeamcount", b.BuildBeamCount)
	cmd.Set("buildtorpedoid", b.BuildTorp)
	cmd.Set("buildtorpedocount", b.BuildTorpCount)
	cmd.PassThrough(orig.Extra)
	return cmd
}

// stockAllocator hands out surrogate stock ids that never collide with an
// id already present in the snapshot (§4.9 step 5).
type stockAllocator struct {
	next int
}

func newStockAllocator(existing []snapshot.Stock) *stockAllocator {
	max := 0
	for _, s := range existing {
		if s.ID > max {
			max = s.ID
		}
	}
	return &stockAllocator{next: max + 1}
}

func (a *stockAllocator) allocate() int {
	id := a.next
	a.next++
	return id
}

type stockSlot struct {
	stockType int
	stockID   int
	amount    int
}

// reconcileStock walks one base's hull/engine/beam/launcher/torpedo arrays
// (§4.9 step 5 / §4.11) and emits one stock command for every slot that
// already has a stock record (an update, whether or not its amount changed),
// plus a new record with a surrogate id for every slot with a positive amount
// and no record yet.
func reconcileStock(b entity.Starbase, stockIndex map[stockKey]snapshot.Stock, allocator *stockAllocator) ([]*Command, bool) {
	var slots []stockSlot
	for i, v := range b.HullStock {
		slots = append(slots, stockSlot{snapshot.StockHull, i + 1, v})
	}
	for i, v := range b.EngineStock {
		slots = append(slots, stockSlot{snapshot.StockEngine, i + 1, v})
	}
	for i, v := range b.BeamStock {
		slots = append(slots, stockSlot{snapshot.StockBeam, i + 1, v})
	}
	for i, v := range b.LauncherStock {
		slots = append(slots, stockSlot{snapshot.StockLauncher, i + 1, v})
	}
	for i, v := range b.TorpStock {
		slots = append(slots, stockSlot{snapshot.StockTorpedo, i + 1, v})
	}

	var commands []*Command
	allocated := false
	for _, slot := range slots {
		key := stockKey{b.PlanetID, slot.stockType, slot.stockID}
		existing, ok := stockIndex[key]
		switch {
		case ok:
			builtAmount := existing.BuiltAmount + (slot.amount - existing.Amount)
			cmd := NewCommand("stock", existing.ID)
			cmd.Set("baseid", b.PlanetID)
			cmd.Set("stocktype", slot.stockType)
			cmd.Set("stockid", slot.stockID)
			cmd.Set("amount", slot.amount)
			cmd.Set("builtamount", builtAmount)
			cmd.PassThrough(existing.Extra)
			commands = append(commands, cmd)
		case slot.amount > 0:
			id := allocator.allocate()
			allocated = true
			cmd := NewCommand("stock", id)
			cmd.Set("baseid", b.PlanetID)
			cmd.Set("stocktype", slot.stockType)
			cmd.Set("stockid", slot.stockID)
			cmd.Set("amount", slot.amount)
			cmd.Set("builtamount", slot.amount)
			commands = append(commands, cmd)
		}
	}
	return commands, allocated
}

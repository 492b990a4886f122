package pack

import (
	"fmt"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/crypto"
	"github.com/nuforge/v3bridge/encoding"
	"github.com/nuforge/v3bridge/entity"
	"github.com/nuforge/v3bridge/errs"
	"github.com/nuforge/v3bridge/ledger"
	"github.com/nuforge/v3bridge/message"
	"github.com/nuforge/v3bridge/ownermap"
	"github.com/nuforge/v3bridge/snapshot"
	"github.com/nuforge/v3bridge/specfiles"
	"github.com/nuforge/v3bridge/utilstream"
)

// Mine-build cost rates, calibrated against §8's S2 scenario (10 mines
// built leaves dis.supplies/dis.megacredits 10 and 40 higher than the
// post-turn values). The core has no general per-structure-kind cost
// table; mines are the one kind the testable properties pin a number to,
// and the ledger's Use/Add hooks generalize to any other kind a caller
// wires the same way.
const (
	mineSupplyCost = 1
	mineCashCost   = 4
)

// Result is everything one Pack call produces: the staged file tree, the
// flow ledger (for residual reporting), and the control vector.
type Result struct {
	Builder *Builder
	Ledger  *ledger.Ledger
	Control *ControlVector
}

// Pack runs the full pipeline (§4.8) against one snapshot for the local
// race slot named by snap.Player.RaceID.
// cfg.Mode selects which of the two §4.8 step-3 shapes steps 3-5 assemble:
// ModeUnpacked writes the per-entity .dat/.dis tree (packUnpacked); ModeResult
// assembles the single player<N>.rst (packResult). Steps 1-2 and 6-10 are
// identical either way.
func Pack(snap *snapshot.Snapshot, cfg config.Config) (*Result, error) {
	if snap.Player.RaceID == 0 {
		return nil, errs.New(errs.InputShape, "snapshot.player.raceid is required")
	}

	b := NewBuilder()
	led := ledger.New()
	control := &ControlVector{}
	om := ownermap.New(snap.Players)
	localRace := snap.Player.RaceID

	// 1. Spec files + truehull/race-name/hullfunc documents.
	synthesizeSpecFiles(b, snap, cfg, localRace)

	// 2. Timestamp.
	timestamp := Timestamp(snap.Settings.HostStart)

	// 3-5. Bases/planets/ships, messages, shipxy/gen/vcr -- shape depends
	// on cfg.Mode.
	if cfg.Mode == config.ModeResult {
		packResult(b, led, control, snap, om, localRace, timestamp)
	} else {
		packUnpacked(b, led, control, snap, om, localRace, timestamp)
	}

	// 6. Control vector.
	b.Set(fmt.Sprintf("contrl%d.dat", localRace), control.Bytes())

	// 7. Dead files from a prior turn.
	b.MarkDead(fmt.Sprintf("kore%d.dat", localRace))
	b.MarkDead(fmt.Sprintf("skore%d.dat", localRace))
	b.MarkDead(fmt.Sprintf("mess35%d.dat", localRace))
	b.MarkDead("control.dat")
	b.MarkDead(fmt.Sprintf("player%d.trn", localRace))

	// 8. init.tmp marks the race slot active.
	b.Set("init.tmp", []byte{byte(localRace)})

	// 9. Utility stream.
	packUtilStream(b, snap, localRace)

	// 10. Flow-residual file.
	if residuals := led.Residuals(); len(residuals) > 0 {
		b.Set("c2flow.txt", renderResiduals(residuals))
		b.Warn("flow ledger has %d non-zero residual(s)", len(residuals))
	}

	return &Result{Builder: b, Ledger: led, Control: control}, nil
}

// packUnpacked assembles the per-entity .dat/.dis/target/mdata/mess/shipxy/
// gen/vcr files per §4.8 steps 3-5, unpacked-mode ordering (bases -> planets
// -> ships so the ledger sees builds before consumers reclaim them).
func packUnpacked(b *Builder, led *ledger.Ledger, control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int, timestamp string) {
	packBases(b, control, snap, om, localRace)
	packPlanets(b, led, control, snap, om, localRace)
	packShips(b, control, snap, om, localRace)

	enc := crypto.NewEncryptor()
	mdata := message.RenderAll(snap.Messages, snap.IonStorms, snap.Minefields, snap.Settings, enc)
	b.Set(fmt.Sprintf("mdata%d.dat", localRace), mdata)
	// mess<N>.dat is the same message stream under the external interface's
	// older name; both are written so a client expecting either convention
	// finds it (see Open Question #9 in DESIGN.md).
	b.Set(fmt.Sprintf("mess%d.dat", localRace), mdata)

	packShipXY(b, snap, om, localRace)
	packGen(b, snap, localRace, timestamp)
	packVCRs(b, snap, localRace)
}

// countPrefixed prepends the 16-bit record count §4.8 step 5/property 2
// requires for a result-mode section: len(buf)/recordSize records, matching
// the way the teacher's own FileData.ParseBlock walks a (header, payload)
// chain rather than a separate offset table -- the client recovers each
// section's extent by reading its count and multiplying by the fixed
// per-kind record size, the same block-chain idiom, just counting records
// instead of bytes (see DESIGN.md Open Question #10).
func countPrefixed(buf []byte, recordSize int) []byte {
	count := 0
	if recordSize > 0 {
		count = len(buf) / recordSize
	}
	header := make([]byte, 2)
	encoding.Write16(header, 0, uint16(count))
	return append(header, buf...)
}

// packResult assembles player<N>.rst: the ships -> targets -> planets ->
// bases -> messages section chain (§4.8 step 3/§4.4's "message section #5"),
// followed by shipxy/gen/vcr, per §4.8 steps 3 and 5. The control vector is
// fed from the same record bytes a client reading the .rst would recompute
// checksums over.
func packResult(b *Builder, led *ledger.Ledger, control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int, timestamp string) {
	shipBuf, _, targetBuf := buildShipRecords(control, snap, om, localRace)
	planetBuf, _ := buildPlanetRecords(led, control, snap, om, localRace)
	baseBuf, _ := buildBaseRecords(control, snap, om, localRace)

	enc := crypto.NewEncryptor()
	messageBuf := message.RenderAll(snap.Messages, snap.IonStorms, snap.Minefields, snap.Settings, enc)

	shipSection := countPrefixed(shipBuf, entity.ShipRecordSize)
	targetSection := countPrefixed(targetBuf, entity.ShipTargetRecordSize)
	planetSection := countPrefixed(planetBuf, entity.PlanetRecordSize)
	baseSection := countPrefixed(baseBuf, entity.StarbaseRecordSize)

	var rst []byte
	rst = append(rst, shipSection...)
	rst = append(rst, targetSection...)
	rst = append(rst, planetSection...)
	rst = append(rst, baseSection...)
	rst = append(rst, messageBuf...)
	rst = append(rst, entity.PackShipXY(shipXYEntries(snap, om))...)
	rst = append(rst, buildGen(entity.GenModeResult, snap, localRace, timestamp, shipSection, planetSection, baseSection)...)
	rst = append(rst, PackVCRSection(snap.VCRs)...)

	b.Set(fmt.Sprintf("player%d.rst", localRace), rst)
}

func renderResiduals(residuals []ledger.Residual) []byte {
	var out []byte
	for _, r := range residuals {
		out = append(out, []byte(fmt.Sprintf("%s %s=%d\n", r.Coord, r.Field, r.Value))...)
	}
	return out
}

func synthesizeSpecFiles(b *Builder, snap *snapshot.Snapshot, cfg config.Config, localRace int) {
	load := func(name string) []byte { return specfiles.LoadTemplate(cfg.WorkingDir, cfg.RootDir, name) }

	beamNames := map[int]string{}
	for _, beam := range snap.Beams {
		beamNames[beam.ID] = string(beam.Name)
	}
	b.Set("beamspec.dat", specfiles.Synthesize(specfiles.BeamSpec, beamNames, load("beamspec.dat")))

	torpNames := map[int]string{}
	for _, t := range snap.Torpedos {
		torpNames[t.ID] = string(t.Name)
	}
	b.Set("torpspec.dat", specfiles.Synthesize(specfiles.TorpSpec, torpNames, load("torpspec.dat")))

	engNames := map[int]string{}
	for _, e := range snap.Engines {
		engNames[e.ID] = string(e.Name)
	}
	b.Set("engspec.dat", specfiles.Synthesize(specfiles.EngSpec, engNames, load("engspec.dat")))

	hullNames := map[int]string{}
	var cloakHulls []int
	for _, h := range snap.Hulls {
		hullNames[h.ID] = string(h.Name)
		if h.CanCloak {
			cloakHulls = append(cloakHulls, h.ID)
		}
	}
	b.Set("hullspec.dat", specfiles.Synthesize(specfiles.HullSpec, hullNames, load("hullspec.dat")))
	b.Set("hullfunc.txt", []byte(specfiles.SynthesizeHullFunc(cloakHulls)))
	b.Set("truehull.dat", specfiles.SynthesizeTrueHull(localRace, snap.RaceHulls, load("truehull.dat")))

	raceNames := map[int]specfiles.RaceNameEntry{}
	for _, r := range snap.Races {
		raceNames[r.ID] = specfiles.RaceNameEntry{Name: string(r.Name), ShortName: string(r.ShortName), Adjective: string(r.Adjective)}
	}
	b.Set("race.nm", specfiles.SynthesizeRaceName(raceNames))

	xy := map[int]specfiles.PlanetXY{}
	names := map[int]string{}
	for _, p := range snap.Planets {
		xy[p.ID] = specfiles.PlanetXY{X: p.X, Y: p.Y, Race: p.Owner}
		names[p.ID] = string(p.Name)
	}
	b.Set("xyplan.dat", specfiles.SynthesizeXYPlan(xy))
	b.Set("planet.nm", specfiles.SynthesizePlanetName(names))
}

// buildBaseRecords renders every locally-owned base's .dat/.dis bytes and
// feeds the control vector, independent of which output shape (unpacked
// tree or player<N>.rst) the caller assembles them into.
func buildBaseRecords(control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) (datBuf, disBuf []byte) {
	planetByID := map[int]snapshot.Planet{}
	for _, p := range snap.Planets {
		planetByID[p.ID] = p
	}

	for _, base := range snap.Starbases {
		planet, ok := planetByID[base.PlanetID]
		if !ok || om.Slot(planet.Owner) != localRace {
			continue
		}
		eb := entity.Starbase{
			PlanetID: base.PlanetID, Race: om.Slot(base.Owner),
			Defense: base.Defense, Damage: base.Damage,
			Fighters: base.Fighters, TargetShipID: base.TargetShipID,
			ShipMission: base.ShipMission, Mission: base.Mission,
			BuildEngine: base.BuildEngineID, BuildBeam: base.BuildBeamID,
			BuildBeamCount: base.BuildBeamCount, BuildTorp: base.BuildTorpID,
			BuildTorpCount: base.BuildTorpCount,
		}
		dat := eb.Pack()
		datBuf = append(datBuf, dat...)
		control.Set(BaseSlot(base.PlanetID), dat)
		// No builtfighters counter is exposed in the turn object the way
		// builtmines is for planets, so .dis mirrors .dat here; a caller
		// tracking fighter production turn-over-turn can diverge the two
		// through the ledger.AddFightersBuilt/ConsumeFightersBuilt hooks, the
		// production-side counterpart of the AddUsed/Use* hooks
		// buildPlanetRecords uses for mines.
		disBuf = append(disBuf, dat...)
	}
	return datBuf, disBuf
}

func packBases(b *Builder, control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) {
	datBuf, disBuf := buildBaseRecords(control, snap, om, localRace)
	b.Set(fmt.Sprintf("bdata%d.dat", localRace), datBuf)
	b.Set(fmt.Sprintf("bdata%d.dis", localRace), disBuf)
}

// buildPlanetRecords renders every included planet's .dat/.dis bytes and
// feeds the control vector, shared between the unpacked and result-mode
// assemblers.
func buildPlanetRecords(led *ledger.Ledger, control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) (datBuf, disBuf []byte) {
	for _, p := range snap.Planets {
		ep := toEntityPlanet(p, om)
		if !ep.Included() {
			continue
		}
		dat := ep.Pack()
		datBuf = append(datBuf, dat...)
		control.Set(PlanetSlot(p.ID), dat)

		dis := ep
		if p.BuiltMines > 0 {
			c := led.At(p.X, p.Y)
			c.AddUsed(0, 0, 0, 0, p.BuiltMines*mineSupplyCost, p.BuiltMines*mineCashCost)
			dis.Mines = ep.Mines - p.BuiltMines
			dis.Supplies = c.UseSupplies(ep.Supplies)
			dis.Megacredits = c.UseCash(ep.Megacredits)
		}
		disBuf = append(disBuf, dis.Pack()...)
	}
	return datBuf, disBuf
}

func packPlanets(b *Builder, led *ledger.Ledger, control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) {
	datBuf, disBuf := buildPlanetRecords(led, control, snap, om, localRace)
	b.Set(fmt.Sprintf("pdata%d.dat", localRace), datBuf)
	b.Set(fmt.Sprintf("pdata%d.dis", localRace), disBuf)
}

func toEntityPlanet(p snapshot.Planet, om *ownermap.Map) entity.Planet {
	return entity.Planet{
		Owner: om.Slot(p.Owner), ID: p.ID, FCode: string(p.FCode),
		Mines: p.Mines, Factories: p.Factories, Defense: p.Defense,
		Neutronium: p.Neutronium, Tritanium: p.Tritanium, Duranium: p.Duranium, Molybdenum: p.Molybdenum,
		Clans: p.Clans, Supplies: p.Supplies, Megacredits: p.Megacredits,
		Ground:           entity.Ground{Neutronium: p.GroundNeutronium, Tritanium: p.GroundTritanium, Duranium: p.GroundDuranium, Molybdenum: p.GroundMolybdenum},
		Density:          entity.Ground{Neutronium: p.DensityNeutronium, Tritanium: p.DensityTritanium, Duranium: p.DensityDuranium, Molybdenum: p.DensityMolybdenum},
		ColTax:           p.ColTax,
		NatTax:           p.NatTax,
		ColHappy:         p.ColHappy,
		NatHappy:         p.NatHappy,
		NatGov:           p.NatGov,
		NatClans:         p.NatClans,
		NatType:          p.NatType,
		Temp:             p.Temp,
		BuildingStarbase: p.BuildingStarbase,
	}
}

// buildShipRecords renders every owned ship's .dat/.dis bytes plus the
// foreign-ship target records, feeding the control vector, shared between
// the unpacked and result-mode assemblers.
func buildShipRecords(control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) (datBuf, disBuf, targetBuf []byte) {
	for _, s := range snap.Ships {
		race := om.Slot(s.Owner)
		if race != localRace {
			et := entity.ShipTarget{ID: s.ID, Race: race, Warp: s.Warp, X: s.X, Y: s.Y, Hull: s.Hull, Heading: s.Heading, Name: string(s.Name)}
			targetBuf = append(targetBuf, et.Pack()...)
			continue
		}
		es := toEntityShip(s, race)
		dat := es.Pack()
		datBuf = append(datBuf, dat...)
		control.Set(ShipSlot(s.ID), dat)
		// Without a per-ship build ledger (torpedoes/fighters produced at a
		// base this ship then carries), .dis equals .dat; a caller wiring
		// ledger.ConsumeTorpBuilt/ConsumeFightersBuilt per cargo kind can
		// diverge the two the same way buildPlanetRecords diverges mines.
		disBuf = append(disBuf, dat...)
	}
	return datBuf, disBuf, targetBuf
}

func packShips(b *Builder, control *ControlVector, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) {
	datBuf, disBuf, targetBuf := buildShipRecords(control, snap, om, localRace)
	b.Set(fmt.Sprintf("ship%d.dat", localRace), datBuf)
	b.Set(fmt.Sprintf("ship%d.dis", localRace), disBuf)
	b.Set(fmt.Sprintf("target%d.dat", localRace), targetBuf)
}

func toEntityShip(s snapshot.Ship, race int) entity.Ship {
	mission1, mission2 := entity.RouteMission1Target(s.Mission, s.Mission1Target)
	return entity.Ship{
		ID: s.ID, Race: race, FCode: string(s.FCode), Warp: s.Warp,
		Dx: int16(s.Dx), Dy: int16(s.Dy), X: s.X, Y: s.Y,
		Engine: s.Engine, Hull: s.Hull, Beam: s.Beam, Beams: s.Beams, Bays: s.Bays,
		TorpedoID: s.TorpedoID, Ammo: s.Ammo, Torps: s.Torps,
		Mission: s.Mission + 1, PrimaryEnemy: s.PrimaryEnemy,
		Mission1Target: mission1, Mission2Target: mission2,
		Damage: s.Damage, Crew: s.Crew, Clans: s.Clans, Name: string(s.Name),
		Cargo: entity.Cargo{
			Neutronium: s.Cargo.Neutronium, Tritanium: s.Cargo.Tritanium,
			Duranium: s.Cargo.Duranium, Molybdenum: s.Cargo.Molybdenum, Supplies: s.Cargo.Supplies,
		},
		Unload:      toEntityUnload(s),
		Transfer:    toEntityTransferBlock(s),
		Megacredits: s.Megacredits,
	}
}

func toEntityTransfer(t snapshot.CargoTransfer) entity.TransferBlock {
	return entity.TransferBlock{
		TargetID: t.TargetID, TargetType: t.TargetType,
		Neutronium: t.Neutronium, Tritanium: t.Tritanium, Duranium: t.Duranium,
		Molybdenum: t.Molybdenum, Supplies: t.Supplies,
	}
}

// toEntityUnload populates the first (unload) transfer block only when
// transfertargettype selects it (1 unload to a planet, 3 jettison); otherwise
// it packs as 14 zero bytes per §4.6.
func toEntityUnload(s snapshot.Ship) entity.TransferBlock {
	if s.TransferTargetType == 1 || s.TransferTargetType == 3 {
		return toEntityTransfer(s.Transfer1)
	}
	return entity.TransferBlock{}
}

// toEntityTransferBlock populates the second (ship-to-ship transfer) block
// only when transfertargettype selects it (2); otherwise zero bytes.
func toEntityTransferBlock(s snapshot.Ship) entity.TransferBlock {
	if s.TransferTargetType == 2 {
		return toEntityTransfer(s.Transfer2)
	}
	return entity.TransferBlock{}
}

func shipXYEntries(snap *snapshot.Snapshot, om *ownermap.Map) map[int]entity.ShipXYEntry {
	entries := map[int]entity.ShipXYEntry{}
	for _, s := range snap.Ships {
		entries[s.ID] = entity.ShipXYEntry{X: s.X, Y: s.Y, Race: om.Slot(s.Owner)}
	}
	return entries
}

func packShipXY(b *Builder, snap *snapshot.Snapshot, om *ownermap.Map, localRace int) {
	b.Set(fmt.Sprintf("shipxy%d.dat", localRace), entity.PackShipXY(shipXYEntries(snap, om)))
}

// buildGen renders the general-state section for either mode. shipSection/
// planetSection/baseSection must already reflect the mode's count-prefix
// convention (bare records for unpacked, count-prefixed for result) per
// §4.8 step 5 / Design Notes property 2.
func buildGen(mode entity.GenMode, snap *snapshot.Snapshot, localRace int, timestamp string, shipSection, planetSection, baseSection []byte) []byte {
	g := entity.Gen{Timestamp: timestamp, Race: localRace, Turn: snap.Game.Turn, TimestampChecksum: TimestampChecksum(timestamp)}
	for _, sc := range snap.Scores {
		if sc.RaceID >= 1 && sc.RaceID <= 11 {
			g.Scores[sc.RaceID-1] = sc.Score
		}
	}
	g.Checksums[0] = encoding.AdditiveByteSum(shipSection)
	g.Checksums[1] = encoding.AdditiveByteSum(planetSection)
	g.Checksums[2] = encoding.AdditiveByteSum(baseSection)
	return g.Pack(mode)
}

func packGen(b *Builder, snap *snapshot.Snapshot, localRace int, timestamp string) {
	gen := buildGen(entity.GenModeUnpacked, snap, localRace, timestamp,
		b.Files[fmt.Sprintf("ship%d.dat", localRace)],
		b.Files[fmt.Sprintf("pdata%d.dat", localRace)],
		b.Files[fmt.Sprintf("bdata%d.dat", localRace)])
	b.Set(fmt.Sprintf("gen%d.dat", localRace), gen)
}

func packVCRs(b *Builder, snap *snapshot.Snapshot, localRace int) {
	b.Set(fmt.Sprintf("vcr%d.dat", localRace), PackVCRSection(snap.VCRs))
}

// PackVCRSection renders the vcr<N>.dat section: every recorded battle with
// at least two combatants, back to back. Shared with the vcr package's
// minimal writer (C10), which emits this section without the rest of a
// turn.
func PackVCRSection(vcrs []snapshot.VCR) []byte {
	var buf []byte
	for _, v := range vcrs {
		if len(v.Units) < 2 {
			continue
		}
		ev := entity.VCR{
			Seed: v.Seed, Temperature: v.Temperature, BattleType: v.BattleType,
			LeftMass: v.Units[0].Mass, RightMass: v.Units[1].Mass,
			Left:        toEntityVCRUnit(v.Units[0]),
			Right:       toEntityVCRUnit(v.Units[1]),
			LeftShield:  v.Units[0].Shields,
			RightShield: v.Units[1].Shields,
		}
		buf = append(buf, ev.Pack()...)
	}
	return buf
}

func toEntityVCRUnit(u snapshot.VCRUnit) entity.VCRUnit {
	return entity.VCRUnit{
		Name: string(u.Name), Damage: u.Damage, Crew: u.Crew, ObjectID: u.ObjectID,
		Race: u.Owner, HullID: u.HullID, Image: u.Image, BeamID: u.BeamID,
		BeamCount: u.BeamCount, BayCount: u.BayCount, TorpedoID: u.TorpedoID,
		AmmoOrTorps: u.AmmoOrTorps, LauncherCount: u.LauncherCount,
	}
}

func packUtilStream(b *Builder, snap *snapshot.Snapshot, localRace int) {
	s := utilstream.New()
	s.AppendTurnMetadata([]byte(fmt.Sprintf("turn=%d", snap.Game.Turn)))
	for _, storm := range snap.IonStorms {
		w := encoding.NewWriter(8)
		w.U16(uint16(storm.X))
		w.U16(uint16(storm.Y))
		w.U16(uint16(storm.Voltage))
		w.U16(boolToU16(storm.IsGrowing))
		s.Append(utilstream.TypeIonStorm, w.Bytes())
	}
	for _, mf := range snap.Minefields {
		w := encoding.NewWriter(8)
		w.U16(uint16(mf.X))
		w.U16(uint16(mf.Y))
		w.U16(uint16(mf.Radius))
		w.U16(uint16(mf.Owner))
		s.Append(utilstream.TypeMinefieldHint, w.Bytes())
	}
	rows := map[int]utilstream.ScoreRow{}
	for _, sc := range snap.Scores {
		if sc.RaceID < 1 || sc.RaceID > 11 {
			continue
		}
		row := rows[sc.RaceID]
		row.Scores[0] = int32(sc.Score)
		rows[sc.RaceID] = row
	}
	s.Append(utilstream.TypeScoreTable, utilstream.PackScoreTable(rows))
	b.Set(fmt.Sprintf("util%d.dat", localRace), s.Bytes())
}

func boolToU16(v bool) uint16 {
	if v {
		return 1
	}
	return 0
}

// Package snapshot models the Nu turn object: a nested, mostly-typed
// mapping covering one game, one player, one turn. Only the fields the core
// needs to pack or maketurn are surfaced as typed struct fields; everything
// else is preserved in an Extra map per sub-object so maketurn can echo
// unrecognized fields back to the server untouched (see Design Notes §9 --
// "Unknown fields must never be dropped").
package snapshot

import "encoding/json"

// SBString holds a string already transliterated to the v3 single-byte
// encoding at parse time (see ToSingleByte in package encoding). Holding the
// already-converted bytes means every downstream consumer in the core is
// working in the target encoding without re-converting.
type SBString string

// Player is the local session's own player record (snapshot.player).
type Player struct {
	RaceID int    `json:"raceid"`
	Name   SBString `json:"name"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// Settings carries session-wide settings, notably the host start time used
// to derive the gen.dat timestamp.
type Settings struct {
	HostStart string                     `json:"hoststart"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// Game carries top-level game identity/turn metadata.
type Game struct {
	ID    int                        `json:"id"`
	Turn  int                        `json:"turn"`
	Extra map[string]json.RawMessage `json:"-"`
}

// PlayerRef is one entry of snapshot.players: the ownerId<->raceSlot mapping
// table (§3 Player identity).
type PlayerRef struct {
	ID     int                        `json:"id"`
	RaceID int                        `json:"raceid"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// Race is one entry of snapshot.races.
type Race struct {
	ID          int                        `json:"id"`
	Name        SBString                   `json:"name"`
	ShortName   SBString                   `json:"shortname"`
	Adjective   SBString                   `json:"adjective"`
	CanCloak    bool                       `json:"cancloak"`
	Extra       map[string]json.RawMessage `json:"-"`
}

// Hull is one entry of snapshot.hulls.
type Hull struct {
	ID       int                        `json:"id"`
	Name     SBString                   `json:"name"`
	CanCloak bool                       `json:"cancloak"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// Beam is one entry of snapshot.beams.
type Beam struct {
	ID    int                        `json:"id"`
	Name  SBString                   `json:"name"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Torpedo is one entry of snapshot.torpedos.
type Torpedo struct {
	ID    int                        `json:"id"`
	Name  SBString                   `json:"name"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Engine is one entry of snapshot.engines.
type Engine struct {
	ID    int                        `json:"id"`
	Name  SBString                   `json:"name"`
	Extra map[string]json.RawMessage `json:"-"`
}

// CargoBlock is the 5-field mineral+supply cargo tuple carried by ships.
type CargoBlock struct {
	Neutronium int `json:"neutronium"`
	Tritanium  int `json:"tritanium"`
	Duranium   int `json:"duranium"`
	Molybdenum int `json:"molybdenum"`
	Supplies   int `json:"supplies"`
}

// CargoTransfer is one 7-field unload/transfer block on a ship record.
type CargoTransfer struct {
	TargetID   int `json:"targetid"`
	TargetType int `json:"targettype"`
	Neutronium int `json:"neutronium"`
	Tritanium  int `json:"tritanium"`
	Duranium   int `json:"duranium"`
	Molybdenum int `json:"molybdenum"`
	Supplies   int `json:"supplies"`
}

// Ship is one entry of snapshot.ships.
type Ship struct {
	ID               int                        `json:"id"`
	Owner            int                        `json:"ownerid"`
	FCode            SBString                   `json:"fcode"`
	Warp             int                        `json:"warp"`
	Dx               int                        `json:"dx"`
	Dy               int                        `json:"dy"`
	X                int                        `json:"x"`
	Y                int                        `json:"y"`
	Engine           int                        `json:"engineid"`
	Hull             int                        `json:"hullid"`
	Beam             int                        `json:"beamid"`
	Beams            int                        `json:"beams"`
	Bays             int                        `json:"bays"`
	TorpedoID        int                        `json:"torpedoid"`
	Ammo             int                        `json:"ammo"`
	Torps            int                        `json:"torps"`
	Mission          int                        `json:"mission"`
	PrimaryEnemy     int                        `json:"primaryenemy"`
	Mission1Target   int                        `json:"mission1target"`
	Mission2Target   int                        `json:"mission2target"`
	Damage           int                        `json:"damage"`
	Crew             int                        `json:"crew"`
	Clans            int                        `json:"clans"`
	Name             SBString                   `json:"name"`
	Cargo            CargoBlock                 `json:"cargo"`
	Megacredits      int                        `json:"megacredits"`
	TransferTargetType int                      `json:"transfertargettype"`
	Transfer1        CargoTransfer              `json:"transfer1"`
	Transfer2        CargoTransfer              `json:"transfer2"`
	Heading          int                        `json:"heading"`
	Extra            map[string]json.RawMessage `json:"-"`
}

// Planet is one entry of snapshot.planets.
type Planet struct {
	ID                int                        `json:"id"`
	Owner             int                        `json:"ownerid"`
	X                 int                        `json:"x"`
	Y                 int                        `json:"y"`
	FCode             SBString                   `json:"fcode"`
	Mines             int                        `json:"mines"`
	Factories         int                        `json:"factories"`
	Defense           int                        `json:"defense"`
	Neutronium        int                        `json:"neutronium"`
	Tritanium         int                        `json:"tritanium"`
	Duranium          int                        `json:"duranium"`
	Molybdenum        int                        `json:"molybdenum"`
	Clans             int                        `json:"clans"`
	Supplies          int                        `json:"supplies"`
	SuppliesSold      int                        `json:"suppliessold"`
	Megacredits       int                        `json:"megacredits"`
	GroundNeutronium  int                        `json:"groundneutronium"`
	GroundTritanium   int                        `json:"groundtritanium"`
	GroundDuranium    int                        `json:"groundduranium"`
	GroundMolybdenum  int                        `json:"groundmolybdenum"`
	DensityNeutronium int                        `json:"densityneutronium"`
	DensityTritanium  int                        `json:"densitytritanium"`
	DensityDuranium   int                        `json:"densityduranium"`
	DensityMolybdenum int                        `json:"densitymolybdenum"`
	ColTax            int                        `json:"colonisttaxrate"`
	NatTax            int                        `json:"nativetaxrate"`
	ColHappy          int                        `json:"colonisthappypoints"`
	NatHappy          int                        `json:"nativehappypoints"`
	NatGov            int                        `json:"nativegovernment"`
	NatClans          int                        `json:"nativeclans"`
	NatType           int                        `json:"nativetype"`
	Temp              int                        `json:"temp"`
	BuildingStarbase  bool                       `json:"buildingstarbase"`
	BuiltMines        int                        `json:"builtmines"`
	BuiltFactories    int                        `json:"builtfactories"`
	BuiltDefense      int                        `json:"builtdefense"`
	Name              SBString                   `json:"name"`
	Extra             map[string]json.RawMessage `json:"-"`
}

// Starbase is one entry of snapshot.starbases. Its stock counts live in
// snapshot.stock (see Stock), not on this record.
type Starbase struct {
	PlanetID        int                        `json:"planetid"`
	Owner           int                        `json:"ownerid"`
	Defense         int                        `json:"defense"`
	Damage          int                        `json:"damage"`
	Tech            [4]int                     `json:"-"`
	Fighters        int                        `json:"fighters"`
	TargetShipID    int                        `json:"targetshipid"`
	ShipMission     int                        `json:"shipmission"`
	Mission         int                        `json:"mission"`
	BuildHullID     int                        `json:"buildhullid"`
	BuildEngineID   int                        `json:"buildengineid"`
	BuildBeamID     int                        `json:"buildbeamid"`
	BuildBeamCount  int                        `json:"buildbeamcount"`
	BuildTorpID     int                        `json:"buildtorpedoid"`
	BuildTorpCount  int                        `json:"buildtorpedocount"`
	Extra           map[string]json.RawMessage `json:"-"`
}

// Stock type identifiers (§3 Stock).
const (
	StockHull     = 1
	StockEngine   = 2
	StockBeam     = 3
	StockLauncher = 4
	StockTorpedo  = 5
)

// Stock is one entry of snapshot.stock.
type Stock struct {
	ID           int                        `json:"id"`
	BaseID       int                        `json:"baseid"`
	StockType    int                        `json:"stocktype"`
	StockID      int                        `json:"stockid"`
	Amount       int                        `json:"amount"`
	BuiltAmount  int                        `json:"builtamount"`
	Extra        map[string]json.RawMessage `json:"-"`
}

// Minefield is one entry of snapshot.minefields.
type Minefield struct {
	ID    int                        `json:"id"`
	Owner int                        `json:"ownerid"`
	X     int                        `json:"x"`
	Y     int                        `json:"y"`
	Radius int                       `json:"radius"`
	Extra map[string]json.RawMessage `json:"-"`
}

// IonStorm is one entry of snapshot.ionstorms.
type IonStorm struct {
	ID        int                        `json:"id"`
	X         int                        `json:"x"`
	Y         int                        `json:"y"`
	Voltage   int                        `json:"voltage"`
	IsGrowing bool                       `json:"isgrowing"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// VCR is one entry of snapshot.vcrs (a single combat recording).
type VCR struct {
	Seed        int                        `json:"seed"`
	Temperature int                        `json:"temperature"`
	BattleType  int                        `json:"battletype"`
	X           int                        `json:"x"`
	Y           int                        `json:"y"`
	Units       []VCRUnit                  `json:"units"`
	Extra       map[string]json.RawMessage `json:"-"`
}

// VCRUnit is one combatant in a VCR.
type VCRUnit struct {
	Name          SBString `json:"name"`
	Damage        int      `json:"damage"`
	Crew          int      `json:"crew"`
	ObjectID      int      `json:"objectid"`
	Owner         int      `json:"ownerid"`
	HullID        int      `json:"hullid"`
	Image         int      `json:"image"`
	BeamID        int      `json:"beamid"`
	BeamCount     int      `json:"beamcount"`
	BayCount      int      `json:"baycount"`
	TorpedoID     int      `json:"torpedoid"`
	AmmoOrTorps   int      `json:"ammoortorps"`
	LauncherCount int      `json:"launchercount"`
	Mass          int      `json:"mass"`
	Shields       int      `json:"shields"`
}

// Message is one entry of snapshot.messages / snapshot.mymessages.
type Message struct {
	ID            int                        `json:"id"`
	Type          int                        `json:"messagetype"`
	SenderID      int                        `json:"senderid"`
	TargetID      int                        `json:"targetid"`
	Headline      SBString                   `json:"headline"`
	Body          SBString                   `json:"body"`
	HasCoords     bool                       `json:"hascoords"`
	X             int                        `json:"x"`
	Y             int                        `json:"y"`
	Extra         map[string]json.RawMessage `json:"-"`
}

// Score is one entry of snapshot.scores, indexed by race slot.
type Score struct {
	RaceID    int                        `json:"raceid"`
	Planets   int                        `json:"planets"`
	Starbases int                        `json:"starbases"`
	Ships     int                        `json:"ships"`
	Score     int                        `json:"score"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// Snapshot is the full decoded Nu turn object.
type Snapshot struct {
	Player     Player
	Settings   Settings
	Game       Game
	Players    []PlayerRef
	Races      []Race
	Hulls      []Hull
	Beams      []Beam
	Torpedos   []Torpedo
	Engines    []Engine
	Planets    []Planet
	Ships      []Ship
	Starbases  []Starbase
	Stock      []Stock
	Minefields []Minefield
	IonStorms  []IonStorm
	VCRs       []VCR
	Messages   []Message
	MyMessages []Message
	Scores     []Score
	RaceHulls  []int

	// Extra preserves any top-level sub-object the core doesn't recognize.
	Extra map[string]json.RawMessage
}

// Package message implements the message renderer (C4): turning structured
// Nu messages, ion storms, minefield advisories, and synthesized
// configuration digests into v3 message records.
package message

// Type is one of the 22 message categories the v3 header line encodes.
type Type int

const (
	TypeOutbound      Type = 0
	TypeSystem        Type = 1
	TypeTerraforming  Type = 2
	TypeMinelaying    Type = 3
	TypeMinesweeping  Type = 4
	TypeColony        Type = 5
	TypeCombat        Type = 6
	TypeFleet         Type = 7
	TypeShip          Type = 8
	TypeEnemyDistress Type = 9
	TypeExplosion     Type = 10
	TypeStarbase      Type = 11
	TypeWebMines      Type = 12
	TypeMeteors       Type = 13
	TypeSensorSweep   Type = 14
	TypeBioScan       Type = 15
	TypeDistressCall  Type = 16
	TypePlayer        Type = 17
	TypeDiplomacy     Type = 18
	TypeMineScan      Type = 19
	TypeDarkSense     Type = 20
	TypeHiss          Type = 21
)

type headerEntry struct {
	Letter byte
	Title  string
}

var headerTable = map[Type]headerEntry{
	TypeOutbound:      {'r', "Outbound"},
	TypeSystem:        {'h', "System"},
	TypeTerraforming:  {'s', "Terraforming"},
	TypeMinelaying:    {'l', "Minelaying"},
	TypeMinesweeping:  {'m', "Minesweeping"},
	TypeColony:        {'p', "Colony"},
	TypeCombat:        {'f', "Combat"},
	TypeFleet:         {'f', "Fleet"},
	TypeShip:          {'s', "Ship"},
	TypeEnemyDistress: {'n', "EnemyDistress"},
	TypeExplosion:     {'x', "Explosion"},
	TypeStarbase:      {'d', "Starbase"},
	TypeWebMines:      {'w', "WebMines"},
	TypeMeteors:       {'y', "Meteors"},
	TypeSensorSweep:   {'z', "SensorSweep"},
	TypeBioScan:       {'z', "BioScan"},
	TypeDistressCall:  {'e', "DistressCall"},
	TypePlayer:        {'r', "Player"},
	TypeDiplomacy:     {'h', "Diplomacy"},
	TypeMineScan:      {'m', "MineScan"},
	TypeDarkSense:     {'9', "DarkSense"},
	TypeHiss:          {'9', "Hiss"},
}

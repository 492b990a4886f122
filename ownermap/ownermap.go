// Package ownermap resolves the mapping between a Nu ownerId (the seat
// number used throughout the JSON snapshot) and the v3 raceSlot (the 1-based
// index v3 file records use for the same concept). The mapping is a pure
// lookup over snapshot.players; it carries no state of its own.
package ownermap

import "github.com/nuforge/v3bridge/snapshot"

// Map resolves ownerId<->raceSlot for one snapshot's players list.
type Map struct {
	ownerToSlot map[int]int
	slotToOwner map[int]int
}

// New builds a Map from a snapshot's players list.
func New(players []snapshot.PlayerRef) *Map {
	m := &Map{
		ownerToSlot: make(map[int]int, len(players)),
		slotToOwner: make(map[int]int, len(players)),
	}
	for _, p := range players {
		m.ownerToSlot[p.ID] = p.RaceID
		m.slotToOwner[p.RaceID] = p.ID
	}
	return m
}

// Slot returns the v3 raceSlot for a Nu ownerId. Zero and any ownerId absent
// from the players list resolve to 0 (the v3 "no owner" sentinel).
func (m *Map) Slot(ownerID int) int {
	if ownerID <= 0 {
		return 0
	}
	slot, ok := m.ownerToSlot[ownerID]
	if !ok {
		return 0
	}
	return slot
}

// Owner returns the Nu ownerId for a v3 raceSlot. Zero and any raceSlot
// absent from the players list resolve to 0.
func (m *Map) Owner(raceSlot int) int {
	if raceSlot <= 0 {
		return 0
	}
	owner, ok := m.slotToOwner[raceSlot]
	if !ok {
		return 0
	}
	return owner
}

// Package ledger implements the flow ledger (C7): a per-coordinate bag of
// consumed/produced resource counters that lets pack reconstruct each
// entity's beginning-of-turn ("dis") state from its post-turn ("dat") state
// without the snapshot itself carrying that history.
package ledger

import "fmt"

// Counters is the resource bag for one coordinate. Used counters accumulate
// consumption charged against a location (a build's cost); Built counters
// accumulate production credited to it (a build's output).
type Counters struct {
	TritaniumUsed  int
	DuraniumUsed   int
	MolybdenumUsed int
	NeutroniumUsed int
	SuppliesUsed   int
	CashUsed       int
	CashMade       int
	FightersBuilt  int
	TorpBuilt      [10]int
}

func use(counter *int, newValue int) int {
	v := newValue + *counter
	*counter = 0
	return v
}

func consume(counter *int, newValue int) int {
	if *counter > newValue {
		*counter -= newValue
		return 0
	}
	newValue -= *counter
	*counter = 0
	return newValue
}

// UseTritanium recovers the pre-build tritanium total and zeroes the counter.
func (c *Counters) UseTritanium(newValue int) int { return use(&c.TritaniumUsed, newValue) }

// UseDuranium recovers the pre-build duranium total and zeroes the counter.
func (c *Counters) UseDuranium(newValue int) int { return use(&c.DuraniumUsed, newValue) }

// UseMolybdenum recovers the pre-build molybdenum total and zeroes the counter.
func (c *Counters) UseMolybdenum(newValue int) int { return use(&c.MolybdenumUsed, newValue) }

// UseNeutronium recovers the pre-build neutronium total and zeroes the counter.
func (c *Counters) UseNeutronium(newValue int) int { return use(&c.NeutroniumUsed, newValue) }

// UseSupplies recovers the pre-build supplies total and zeroes the counter.
func (c *Counters) UseSupplies(newValue int) int { return use(&c.SuppliesUsed, newValue) }

// UseCash recovers the pre-build megacredits total and zeroes the counter.
func (c *Counters) UseCash(newValue int) int { return use(&c.CashUsed, newValue) }

// ConsumeFightersBuilt reclaims fighters built this turn from a ship's bays.
func (c *Counters) ConsumeFightersBuilt(newValue int) int { return consume(&c.FightersBuilt, newValue) }

// ConsumeTorpBuilt reclaims torpedoes of kind idx (0-based, torp1..torp10)
// built this turn from a ship's magazine.
func (c *Counters) ConsumeTorpBuilt(idx, newValue int) int {
	return consume(&c.TorpBuilt[idx], newValue)
}

// ConsumeCashMade reclaims cash a planet's supply sale produced beyond its
// own megacredits, as claimed by a ship at the same location.
func (c *Counters) ConsumeCashMade(newValue int) int { return consume(&c.CashMade, newValue) }

// AddUsed charges a build's mineral/supply/cash cost against the location.
func (c *Counters) AddUsed(tri, dur, mol, neu, sup, cash int) {
	c.TritaniumUsed += tri
	c.DuraniumUsed += dur
	c.MolybdenumUsed += mol
	c.NeutroniumUsed += neu
	c.SuppliesUsed += sup
	c.CashUsed += cash
}

// AddFightersBuilt credits fighter production to the location.
func (c *Counters) AddFightersBuilt(n int) { c.FightersBuilt += n }

// AddTorpBuilt credits torpedo production of kind idx to the location.
func (c *Counters) AddTorpBuilt(idx, n int) { c.TorpBuilt[idx] += n }

// AddCashMade credits cash beyond a planet's own balance to the location,
// for ships there to reclaim via ConsumeCashMade.
func (c *Counters) AddCashMade(n int) { c.CashMade += n }

// IsZero reports whether every counter is zero.
func (c *Counters) IsZero() bool {
	if c.TritaniumUsed != 0 || c.DuraniumUsed != 0 || c.MolybdenumUsed != 0 ||
		c.NeutroniumUsed != 0 || c.SuppliesUsed != 0 || c.CashUsed != 0 ||
		c.CashMade != 0 || c.FightersBuilt != 0 {
		return false
	}
	for _, v := range c.TorpBuilt {
		if v != 0 {
			return false
		}
	}
	return true
}

// Residual names one non-zero counter left over after a pack run.
type Residual struct {
	Coord string
	Field string
	Value int
}

// Ledger is the full flow ledger for one pack run, keyed by coordinate.
type Ledger struct {
	byCoord map[string]*Counters
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{byCoord: make(map[string]*Counters)}
}

// Coord formats the ledger's map key for a location.
func Coord(x, y int) string { return fmt.Sprintf("%d,%d", x, y) }

// At returns the counters for (x,y), creating them on first access.
func (l *Ledger) At(x, y int) *Counters {
	key := Coord(x, y)
	c, ok := l.byCoord[key]
	if !ok {
		c = &Counters{}
		l.byCoord[key] = c
	}
	return c
}

// Residuals lists every non-zero counter remaining across every location,
// for the diagnostic file pack emits when the ledger didn't fully drain.
func (l *Ledger) Residuals() []Residual {
	var out []Residual
	for coord, c := range l.byCoord {
		if c.TritaniumUsed != 0 {
			out = append(out, Residual{coord, "tritaniumUsed", c.TritaniumUsed})
		}
		if c.DuraniumUsed != 0 {
			out = append(out, Residual{coord, "duraniumUsed", c.DuraniumUsed})
		}
		if c.MolybdenumUsed != 0 {
			out = append(out, Residual{coord, "molybdenumUsed", c.MolybdenumUsed})
		}
		if c.NeutroniumUsed != 0 {
			out = append(out, Residual{coord, "neutroniumUsed", c.NeutroniumUsed})
		}
		if c.SuppliesUsed != 0 {
			out = append(out, Residual{coord, "suppliesUsed", c.SuppliesUsed})
		}
		if c.CashUsed != 0 {
			out = append(out, Residual{coord, "cashUsed", c.CashUsed})
		}
		if c.CashMade != 0 {
			out = append(out, Residual{coord, "cashMade", c.CashMade})
		}
		if c.FightersBuilt != 0 {
			out = append(out, Residual{coord, "fightersBuilt", c.FightersBuilt})
		}
		for i, v := range c.TorpBuilt {
			if v != 0 {
				out = append(out, Residual{coord, fmt.Sprintf("torp%dBuilt", i+1), v})
			}
		}
	}
	return out
}

// IsEmpty reports whether the ledger has no non-zero counters anywhere.
func (l *Ledger) IsEmpty() bool { return len(l.Residuals()) == 0 }

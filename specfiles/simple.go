// Package specfiles implements the spec-file synthesizer (C2): the static
// per-game specification files every v3 client expects alongside a turn
// (beam/torpedo/engine/hull/planet-xy/planet-name/race-name/truehull and the
// hull-function text document). The simple spec files (Synthesize) overlay a
// template file read from disk, falling back to a zeroed record with a
// synthesized name; truehull.dat keeps the template's other rows. race.nm,
// xyplan.dat, planet.nm and hullfunc.txt are built from the snapshot alone.
package specfiles

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/nuforge/v3bridge/encoding"
	"github.com/nuforge/v3bridge/log"
)

// SimpleSpec describes one of the fixed-count, fixed-size spec files whose
// only core-meaningful field is the entity name (beamspec, torpspec,
// engspec, hullspec).
type SimpleSpec struct {
	Count     int
	EntrySize int
	NameLen   int
}

var (
	BeamSpec = SimpleSpec{Count: 10, EntrySize: 36, NameLen: 20}
	TorpSpec = SimpleSpec{Count: 10, EntrySize: 38, NameLen: 20}
	EngSpec  = SimpleSpec{Count: 9, EntrySize: 66, NameLen: 20}
	HullSpec = SimpleSpec{Count: 20, EntrySize: 315, NameLen: 20}
)

// LoadTemplate searches workingDir then rootDir for a file named filename
// and returns its bytes, or nil if neither exists.
func LoadTemplate(workingDir, rootDir, filename string) []byte {
	for _, dir := range []string{workingDir, rootDir} {
		if dir == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err == nil {
			return data
		}
	}
	log.GetLogger().Debug("no template found", log.F("file", filename))
	return nil
}

// Synthesize renders one simple spec file. names maps 1-based id to the
// entity's display name; ids without a name fall back to template bytes or,
// failing that, a zeroed record with name "#k".
func Synthesize(spec SimpleSpec, names map[int]string, template []byte) []byte {
	out := make([]byte, spec.Count*spec.EntrySize)
	for k := 1; k <= spec.Count; k++ {
		off := (k - 1) * spec.EntrySize
		rec := out[off : off+spec.EntrySize]

		if len(template) >= off+spec.EntrySize {
			copy(rec, template[off:off+spec.EntrySize])
		}

		name, ok := names[k]
		if !ok && len(template) < off+spec.EntrySize {
			name = "#" + strconv.Itoa(k)
		}
		if name != "" {
			encoding.WriteFixedString(rec, 0, spec.NameLen, name)
		}
	}
	return out
}

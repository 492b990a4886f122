// Package vcr implements the VCR writer (C10): the minimal subset of
// pack that emits only the combat-recording section and the spec files a
// client needs to replay it, for a caller who wants to review battles
// without staging a full turn.
package vcr

import (
	"fmt"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/errs"
	"github.com/nuforge/v3bridge/pack"
	"github.com/nuforge/v3bridge/snapshot"
	"github.com/nuforge/v3bridge/specfiles"
)

// Write renders the vcr<N>.dat section plus the hull/beam/torpedo/engine
// spec files battle replay depends on, staged in a Builder the caller can
// write out the same way a full Pack run does.
func Write(snap *snapshot.Snapshot, cfg config.Config) (*pack.Builder, error) {
	if snap.Player.RaceID == 0 {
		return nil, errs.New(errs.InputShape, "snapshot.player.raceid is required")
	}
	localRace := snap.Player.RaceID

	b := pack.NewBuilder()

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
	for _, h := range snap.Hulls {
		hullNames[h.ID] = string(h.Name)
	}
	b.Set("hullspec.dat", specfiles.Synthesize(specfiles.HullSpec, hullNames, load("hullspec.dat")))

	b.Set(fmt.Sprintf("vcr%d.dat", localRace), pack.PackVCRSection(snap.VCRs))

	return b, nil
}

package specfiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSimpleSpecDefaultsToSyntheticName(t *testing.T) {
	data := Synthesize(BeamSpec, map[int]string{1: "Laser"}, nil)
	require.Len(t, data, BeamSpec.Count*BeamSpec.EntrySize)

	name1 := string(data[0:20])
	assert.Contains(t, name1, "Laser")

	name2 := string(data[BeamSpec.EntrySize : BeamSpec.EntrySize+20])
	assert.Contains(t, name2, "#2")
}

func TestSynthesizeSimpleSpecOverlaysTemplate(t *testing.T) {
	template := make([]byte, BeamSpec.Count*BeamSpec.EntrySize)
	template[20] = 0xAB // non-name byte in entry 1

	data := Synthesize(BeamSpec, map[int]string{1: "Laser"}, template)
	assert.Equal(t, byte(0xAB), data[20])
	assert.Contains(t, string(data[0:20]), "Laser")
}

func TestSynthesizeTrueHullRewritesOnlyLocalRow(t *testing.T) {
	template := make([]byte, TrueHullSize)
	for i := range template {
		template[i] = 0xFF
	}

	out := SynthesizeTrueHull(2, []int{1, 2, 3}, template)

	row1Off := 0
	assert.Equal(t, byte(0xFF), out[row1Off])

	row2Off := TrueHullPerRace * 2
	assert.Equal(t, byte(1), out[row2Off])
	assert.Equal(t, byte(2), out[row2Off+2])
	assert.Equal(t, byte(3), out[row2Off+4])
	assert.Equal(t, byte(0), out[row2Off+6])
}

func TestSynthesizeRaceNameSize(t *testing.T) {
	out := SynthesizeRaceName(map[int]RaceNameEntry{
		1: {Name: "Federation", ShortName: "Fed", Adjective: "Federal"},
	})
	require.Len(t, out, RaceNameSize)
	assert.Contains(t, string(out[0:raceNameFullLen]), "Federation")
}

func TestSynthesizeXYPlanAndPlanetName(t *testing.T) {
	xy := SynthesizeXYPlan(map[int]PlanetXY{1: {X: 1000, Y: 2000, Race: 3}})
	require.Len(t, xy, XYPlanSize)

	names := SynthesizePlanetName(map[int]string{1: "Earth"})
	require.Len(t, names, PlanetNameSize)
	assert.Contains(t, string(names[0:PlanetNameLen]), "Earth")
}

func TestSynthesizeHullFuncEmitsCloakOnly(t *testing.T) {
	text := SynthesizeHullFunc([]int{3, 7})
	assert.Contains(t, text, "Hull 3")
	assert.Contains(t, text, "Hull 7")
	assert.Contains(t, text, "Add Cloak")
}

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypedFields(t *testing.T) {
	doc := []byte(`{
		"game": {"id": 42, "turn": 7},
		"players": [{"id": 1, "raceid": 3}, {"id": 2, "raceid": 1}],
		"ships": [{"id": 100, "ownerid": 1, "name": "Scout", "warp": 6}]
	}`)

	snap, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, 42, snap.Game.ID)
	assert.Equal(t, 7, snap.Game.Turn)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, 3, snap.Players[0].RaceID)
	require.Len(t, snap.Ships, 1)
	assert.Equal(t, SBString("Scout"), snap.Ships[0].Name)
	assert.Equal(t, 6, snap.Ships[0].Warp)
}

func TestParsePreservesUnrecognizedFields(t *testing.T) {
	doc := []byte(`{
		"ships": [{"id": 1, "ownerid": 1, "somenewfield": 99}],
		"afutureobject": {"x": 1}
	}`)

	snap, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, snap.Ships, 1)
	require.NotNil(t, snap.Ships[0].Extra)
	assert.Contains(t, snap.Ships[0].Extra, "somenewfield")

	require.Contains(t, snap.Extra, "afutureobject")
}

func TestSBStringTransliteratesOnDecode(t *testing.T) {
	doc := []byte(`{"ships": [{"id": 1, "name": "Café 望"}]}`)

	snap, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, snap.Ships, 1)

	name := string(snap.Ships[0].Name)
	assert.Equal(t, byte(0xE9), name[3])
	assert.Contains(t, name, "?")
}

func TestParseEmptySnapshot(t *testing.T) {
	snap, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, snap.Ships)
	assert.Empty(t, snap.Planets)
	assert.NotNil(t, snap.Extra)
}

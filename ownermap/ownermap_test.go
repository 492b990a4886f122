package ownermap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nuforge/v3bridge/snapshot"
)

func TestSlotAndOwnerRoundTrip(t *testing.T) {
	m := New([]snapshot.PlayerRef{
		{ID: 501, RaceID: 1},
		{ID: 777, RaceID: 4},
	})

	assert.Equal(t, 1, m.Slot(501))
	assert.Equal(t, 4, m.Slot(777))
	assert.Equal(t, 501, m.Owner(1))
	assert.Equal(t, 777, m.Owner(4))
}

func TestUnknownAndZeroResolveToZero(t *testing.T) {
	m := New([]snapshot.PlayerRef{{ID: 501, RaceID: 1}})

	assert.Equal(t, 0, m.Slot(0))
	assert.Equal(t, 0, m.Slot(-5))
	assert.Equal(t, 0, m.Slot(99999))
	assert.Equal(t, 0, m.Owner(0))
	assert.Equal(t, 0, m.Owner(99))
}

package utilstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnMetadataAlwaysFirst(t *testing.T) {
	s := New()
	s.Append(TypeIonStorm, []byte{1, 2})
	s.AppendTurnMetadata([]byte{9, 9})

	data := s.Bytes()
	require.True(t, len(data) >= 4)
	typ := int(data[0]) | int(data[1])<<8
	assert.Equal(t, TypeTurnMetadata, typ)
}

func TestRoundTrip(t *testing.T) {
	s := New()
	s.AppendTurnMetadata([]byte{1, 2, 3})
	s.Append(TypeIonStorm, []byte{4, 5})
	s.Append(TypeScoreTable, make([]byte, 10))

	data := s.Bytes()
	records, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, TypeTurnMetadata, records[0].Type)
	assert.Equal(t, []byte{1, 2, 3}, records[0].Payload)
	assert.Equal(t, TypeScoreTable, records[2].Type)
	assert.Len(t, records[2].Payload, 10)
}

func TestPackScoreTableMissingRaceIsMinusOne(t *testing.T) {
	data := PackScoreTable(map[int]ScoreRow{
		1: {Name: "Federation", UtilityID: 1, Scores: [11]int32{1, 2, 3}},
	})
	require.Len(t, data, 11*ScoreTableEntrySize)

	// slot 2 is missing; its first score word should decode to -1.
	off := ScoreTableEntrySize + 50 + 6
	v := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16 | int32(data[off+3])<<24
	assert.Equal(t, int32(-1), v)
}

package utilstream

import "github.com/nuforge/v3bridge/encoding"

// ScoreTableEntrySize is the byte length of one race's score-table row:
// a 50-byte name, a 16-bit utility id, two reserved words, and eleven
// 32-bit scores.
const ScoreTableEntrySize = 50 + 2 + 4 + 11*4

// ScoreRow is one race's row in the score table (type 51).
type ScoreRow struct {
	Name      string
	UtilityID int
	Scores    [11]int32
}

// missingScore is emitted for any score slot a race doesn't occupy.
const missingScore int32 = -1

// PackScoreTable renders the type-51 payload for up to 11 races, indexed by
// race slot (1-based). Missing races get an all-(-1) row.
func PackScoreTable(byRace map[int]ScoreRow) []byte {
	out := make([]byte, 11*ScoreTableEntrySize)
	for slot := 1; slot <= 11; slot++ {
		off := (slot - 1) * ScoreTableEntrySize
		row, ok := byRace[slot]
		if !ok {
			ms := missingScore
			for i := 0; i < 11; i++ {
				encoding.Write32(out, off+50+6+i*4, uint32(ms))
			}
			continue
		}
		encoding.WriteFixedString(out, off, 50, row.Name)
		encoding.Write16(out, off+50, uint16(row.UtilityID))
		for i, s := range row.Scores {
			encoding.Write32(out, off+50+6+i*4, uint32(s))
		}
	}
	return out
}

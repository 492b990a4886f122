// Package utilstream implements the utility stream writer (C12): a flat
// sequence of length-tagged records (type, length, payload) covering turn
// metadata, ion storms, minefield hints, allied-base hints, and score
// tables.
package utilstream

import "github.com/nuforge/v3bridge/encoding"

// Record types the stream carries (§4.12, §3 invariant 6).
const (
	TypeTurnMetadata  = 13
	TypeMinefieldHint = 0
	TypeAlliedBase    = 11
	TypeIonStorm      = 17
	TypeScoreTable    = 51
)

// Record is one (typeWord, lengthWord, payload) entry.
type Record struct {
	Type    int
	Payload []byte
}

// Stream accumulates records in memory and serializes them once, per the
// builder pattern the core uses everywhere instead of a live file handle.
type Stream struct {
	records []Record
}

// New returns an empty stream. The first record appended must be type 13
// (turn metadata) per §3 invariant 6; AppendTurnMetadata enforces the order.
func New() *Stream {
	return &Stream{}
}

// AppendTurnMetadata appends the mandatory leading type-13 record.
func (s *Stream) AppendTurnMetadata(payload []byte) {
	s.records = append([]Record{{Type: TypeTurnMetadata, Payload: payload}}, s.records...)
}

// Append adds a record after the turn-metadata header.
func (s *Stream) Append(recordType int, payload []byte) {
	s.records = append(s.records, Record{Type: recordType, Payload: payload})
}

// Bytes serializes the stream to its on-disk form.
func (s *Stream) Bytes() []byte {
	size := 0
	for _, r := range s.records {
		size += 4 + len(r.Payload)
	}
	buf := make([]byte, size)
	pos := 0
	for _, r := range s.records {
		encoding.Write16(buf, pos, uint16(r.Type))
		encoding.Write16(buf, pos+2, uint16(len(r.Payload)))
		copy(buf[pos+4:], r.Payload)
		pos += 4 + len(r.Payload)
	}
	return buf
}

// Parse decodes a serialized utility stream back into records.
func Parse(data []byte) ([]Record, error) {
	r := encoding.NewReader(data)
	var out []Record
	for r.Pos() < len(data) {
		typ := int(r.U16())
		length := int(r.U16())
		if r.Err() != nil {
			return out, r.Err()
		}
		payload := make([]byte, length)
		for i := 0; i < length; i++ {
			payload[i] = data[r.Pos()+i]
		}
		r.Skip(length)
		if r.Err() != nil {
			return out, r.Err()
		}
		out = append(out, Record{Type: typ, Payload: payload})
	}
	return out, nil
}

package message

import (
	"fmt"
	"sort"

	"github.com/nuforge/v3bridge/crypto"
	"github.com/nuforge/v3bridge/encoding"
	"github.com/nuforge/v3bridge/snapshot"
)

// voltageCategory classifies an ion storm by voltage per §4.4.
func voltageCategory(voltage int) string {
	switch {
	case voltage <= 50:
		return "harmless"
	case voltage <= 100:
		return "moderate"
	case voltage <= 150:
		return "strong"
	case voltage <= 200:
		return "dangerous"
	default:
		return "very dangerous"
	}
}

// IonStormRecord synthesizes one message for an active ion storm.
func IonStormRecord(s snapshot.IonStorm) Record {
	trend := "weakening"
	if s.IsGrowing {
		trend = "growing"
	}
	body := fmt.Sprintf("Ion storm detected: %s, %s.", voltageCategory(s.Voltage), trend)
	return Record{
		Type:      TypeSystem,
		TargetID:  s.ID,
		Headline:  "Ion Storm Warning",
		Body:      body,
		X:         s.X,
		Y:         s.Y,
		HasCoords: true,
	}
}

// MinefieldRecord synthesizes one message for a minefield visible this turn.
func MinefieldRecord(m snapshot.Minefield) Record {
	body := fmt.Sprintf("Minefield detected, radius %d.", m.Radius)
	return Record{
		Type:      TypeMinelaying,
		TargetID:  m.ID,
		Headline:  "Minefield Advisory",
		Body:      body,
		X:         m.X,
		Y:         m.Y,
		HasCoords: true,
	}
}

// ConfigDigestRecords synthesizes the three configuration summary messages:
// settings, host-config scalars, host-config arrays.
func ConfigDigestRecords(settings snapshot.Settings) []Record {
	return []Record{
		{
			Type:     TypeSystem,
			TargetID: 0,
			Headline: "Game Settings",
			Body:     fmt.Sprintf("Host start: %s", settings.HostStart),
		},
		{
			Type:     TypeSystem,
			TargetID: 0,
			Headline: "Host Configuration (scalars)",
			Body:     fmt.Sprintf("%d extra setting(s) on file.", len(settings.Extra)),
		},
		{
			Type:     TypeSystem,
			TargetID: 0,
			Headline: "Host Configuration (arrays)",
			Body:     "See settings section for array-valued configuration.",
		},
	}
}

// RenderAll assembles the full mdata<N>.dat byte stream: game messages
// sorted by id descending (matching the v3 newest-first convention),
// followed by the synthesized block, each record length-prefixed so the
// stream can be split back into messages.
func RenderAll(msgs []snapshot.Message, storms []snapshot.IonStorm, fields []snapshot.Minefield, settings snapshot.Settings, enc *crypto.Encryptor) []byte {
	sorted := make([]snapshot.Message, len(msgs))
	copy(sorted, msgs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	var records []Record
	for _, m := range sorted {
		records = append(records, Record{
			Type:      Type(m.Type),
			TargetID:  m.TargetID,
			Headline:  string(m.Headline),
			Body:      string(m.Body),
			X:         m.X,
			Y:         m.Y,
			HasCoords: m.HasCoords,
		})
	}
	for _, s := range storms {
		records = append(records, IonStormRecord(s))
	}
	for _, f := range fields {
		records = append(records, MinefieldRecord(f))
	}
	records = append(records, ConfigDigestRecords(settings)...)

	var out []byte
	for _, r := range records {
		body := r.EncryptedBytes(enc)
		lenBuf := make([]byte, 2)
		encoding.Write16(lenBuf, 0, uint16(len(body)))
		out = append(out, lenBuf...)
		out = append(out, body...)
	}
	return out
}

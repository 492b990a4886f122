package snapshot

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/nuforge/v3bridge/errs"
)

// knownTopLevelKeys lists every sub-object Parse understands. Anything else
// in the turn object is kept verbatim in Snapshot.Extra.
var knownTopLevelKeys = []string{
	"player", "settings", "game", "players", "races", "hulls", "beams",
	"torpedos", "engines", "planets", "ships", "starbases", "stock",
	"minefields", "ionstorms", "vcrs", "messages", "mymessages", "scores",
	"racehulls",
}

// Parse decodes a raw Nu turn object into a Snapshot. Fields the core does
// not use are preserved rather than discarded, at every level of nesting
// that carries an Extra map.
func Parse(data []byte) (*Snapshot, error) {
	top := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding snapshot json", err)
	}

	snap := &Snapshot{}
	var err error

	if raw, ok := top["player"]; ok {
		if err = decodeObject(raw, &snap.Player); err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "decoding player", err)
		}
	}
	if raw, ok := top["settings"]; ok {
		if err = decodeObject(raw, &snap.Settings); err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "decoding settings", err)
		}
	}
	if raw, ok := top["game"]; ok {
		if err = decodeObject(raw, &snap.Game); err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "decoding game", err)
		}
	}
	if snap.Players, err = decodeList[PlayerRef](top["players"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding players", err)
	}
	if snap.Races, err = decodeList[Race](top["races"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding races", err)
	}
	if snap.Hulls, err = decodeList[Hull](top["hulls"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding hulls", err)
	}
	if snap.Beams, err = decodeList[Beam](top["beams"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding beams", err)
	}
	if snap.Torpedos, err = decodeList[Torpedo](top["torpedos"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding torpedos", err)
	}
	if snap.Engines, err = decodeList[Engine](top["engines"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding engines", err)
	}
	if snap.Planets, err = decodeList[Planet](top["planets"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding planets", err)
	}
	if snap.Ships, err = decodeList[Ship](top["ships"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding ships", err)
	}
	if snap.Starbases, err = decodeList[Starbase](top["starbases"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding starbases", err)
	}
	if snap.Stock, err = decodeList[Stock](top["stock"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding stock", err)
	}
	if snap.Minefields, err = decodeList[Minefield](top["minefields"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding minefields", err)
	}
	if snap.IonStorms, err = decodeList[IonStorm](top["ionstorms"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding ionstorms", err)
	}
	if snap.VCRs, err = decodeList[VCR](top["vcrs"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding vcrs", err)
	}
	if snap.Messages, err = decodeList[Message](top["messages"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding messages", err)
	}
	if snap.MyMessages, err = decodeList[Message](top["mymessages"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding mymessages", err)
	}
	if snap.Scores, err = decodeList[Score](top["scores"]); err != nil {
		return nil, errs.Wrap(errs.FormatMismatch, "decoding scores", err)
	}
	if raw, ok := top["racehulls"]; ok {
		if err = json.Unmarshal(raw, &snap.RaceHulls); err != nil {
			return nil, errs.Wrap(errs.FormatMismatch, "decoding racehulls", err)
		}
	}

	snap.Extra = map[string]json.RawMessage{}
	for k, v := range top {
		if !isKnownKey(k) {
			snap.Extra[k] = v
		}
	}

	return snap, nil
}

func isKnownKey(k string) bool {
	for _, known := range knownTopLevelKeys {
		if k == known {
			return true
		}
	}
	return false
}

// decodeObject unmarshals data into v and fills v's Extra field (if it has
// one) with whatever JSON keys v's struct tags did not claim.
func decodeObject(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	extra, err := unclaimedFields(data, v)
	if err != nil {
		return err
	}
	setExtraField(v, extra)
	return nil
}

// decodeList decodes a JSON array of objects into a slice of T, filling
// each element's Extra field with its unclaimed keys.
func decodeList[T any](data json.RawMessage) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rawItems []json.RawMessage
	if err := json.Unmarshal(data, &rawItems); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rawItems))
	for _, item := range rawItems {
		var v T
		if err := decodeObject(item, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// unclaimedFields returns the JSON object's keys that v's json tags did not
// map to a field.
func unclaimedFields(data json.RawMessage, v any) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Ptr {
		return raw, nil
	}
	t = t.Elem()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.SplitN(tag, ",", 2)[0]
		delete(raw, name)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func setExtraField(v any, extra map[string]json.RawMessage) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return
	}
	rv = rv.Elem()
	f := rv.FieldByName("Extra")
	if f.IsValid() && f.CanSet() && f.Type() == reflect.TypeOf(extra) {
		f.Set(reflect.ValueOf(extra))
	}
}

// UnmarshalJSON on SBString stores the string bytes transliterated to the
// v3 single-byte encoding rather than the original UTF-8 bytes, so every
// later consumer in the core already has the target encoding.
func (s *SBString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SBString(sbTransliterate(raw))
	return nil
}

func (s SBString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

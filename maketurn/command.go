package maketurn

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field is one key/value pair of a command record (§3 "Command record").
type Field struct {
	Key   string
	Value string
}

// Command is the packer-facing view of one `Kind<id>=key:::value|||…` record.
// Fields are emitted in the order they were appended: interpreted fields
// first, then any pass-through fields copied verbatim from the snapshot.
type Command struct {
	Kind   string
	ID     int
	Fields []Field
}

// NewCommand starts a command record for the given kind and id.
func NewCommand(kind string, id int) *Command {
	return &Command{Kind: kind, ID: id}
}

// Set appends an interpreted field.
func (c *Command) Set(key string, value any) *Command {
	c.Fields = append(c.Fields, Field{Key: key, Value: toFieldValue(value)})
	return c
}

// PassThrough appends every key in extra whose value the core didn't already
// interpret, in sorted key order so the output is deterministic. Keys already
// present on the command (case-insensitively) are skipped so an interpreted
// field is never shadowed by the raw snapshot value it was derived from.
func (c *Command) PassThrough(extra map[string]json.RawMessage) *Command {
	if len(extra) == 0 {
		return c
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		seen[strings.ToLower(f.Key)] = true
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !seen[strings.ToLower(k)] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.Fields = append(c.Fields, Field{Key: k, Value: string(extra[k])})
	}
	return c
}

func toFieldValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// String renders the command in the `Kind<id>=key1:::value1|||key2:::value2`
// form §3 defines.
func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString(c.Kind)
	sb.WriteString(strconv.Itoa(c.ID))
	sb.WriteByte('=')
	for i, f := range c.Fields {
		if i > 0 {
			sb.WriteString("|||")
		}
		sb.WriteString(f.Key)
		sb.WriteString(":::")
		sb.WriteString(f.Value)
	}
	return sb.String()
}

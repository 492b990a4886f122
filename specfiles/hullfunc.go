package specfiles

import (
	"strconv"
	"strings"
)

// SynthesizeHullFunc renders hullfunc.txt: every hull defaults to its
// built-in function set, with a single override -- an explicit Cloak grant
// for every hull whose snapshot flag cancloak is true.
func SynthesizeHullFunc(cloakHullIDs []int) string {
	var b strings.Builder
	b.WriteString("; hull function overrides\n")
	for _, id := range cloakHullIDs {
		b.WriteString("Hull ")
		b.WriteString(strconv.Itoa(id))
		b.WriteString("\n  Add Cloak\n")
	}
	return b.String()
}

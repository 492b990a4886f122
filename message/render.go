package message

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nuforge/v3bridge/crypto"
	"github.com/nuforge/v3bridge/encoding"
)

const wordWrapWidth = 40

var (
	reBR      = regexp.MustCompile(`(?i)<br\s*/?>`)
	reSub     = regexp.MustCompile(`(?is)<sub>.*?</sub>`)
	reTag     = regexp.MustCompile(`(?s)<[^>]*>`)
	reSpace   = regexp.MustCompile(`[ \t]+`)
	reCoord   = regexp.MustCompile(`\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)`)
)

// HeaderLine renders the `(-<letter><NNNN>)<<< <title> >>>` header for one
// message. isPlayerToPlayer selects the one-hex-digit-plus-000 NNNN form.
func HeaderLine(t Type, targetID int, isPlayerToPlayer bool) string {
	entry, ok := headerTable[t]
	if !ok {
		entry = headerEntry{'r', "Unknown"}
	}
	var nnnn string
	if isPlayerToPlayer {
		nnnn = fmt.Sprintf("%X000", targetID&0xF)
	} else {
		nnnn = fmt.Sprintf("%04d", targetID&0xFFFF)
	}
	return fmt.Sprintf("(-%c%s)<<< %s >>>", entry.Letter, nnnn, entry.Title)
}

// StripHTML collapses whitespace, turns <br> into a line break, and removes
// <sub>...</sub> spans, per §4.3.
func StripHTML(s string) string {
	s = reSub.ReplaceAllString(s, "")
	s = reBR.ReplaceAllString(s, "\n")
	s = reTag.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(reSpace.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}

// WordWrap wraps s at approximately 40 columns, breaking on spaces only.
func WordWrap(s string) string {
	var out strings.Builder
	for i, para := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(wrapLine(para))
	}
	return out.String()
}

func wrapLine(line string) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}
	var out strings.Builder
	col := 0
	for i, w := range words {
		if i > 0 {
			if col+1+len(w) > wordWrapWidth {
				out.WriteByte('\n')
				col = 0
			} else {
				out.WriteByte(' ')
				col++
			}
		}
		out.WriteString(w)
		col += len(w)
	}
	return out.String()
}

// NormalizeCoordFormat collapses "( x, y )" spacing variants to "(x, y)".
func NormalizeCoordFormat(s string) string {
	return reCoord.ReplaceAllString(s, "($1, $2)")
}

// EnsureLocationLine appends a "Location: (x, y)" line to body when the
// message carries coordinates and doesn't already name them.
func EnsureLocationLine(body string, x, y int, hasCoords bool) string {
	if !hasCoords {
		return body
	}
	normalized := NormalizeCoordFormat(body)
	loc := fmt.Sprintf("(%d, %d)", x, y)
	if strings.Contains(normalized, loc) {
		return normalized
	}
	if normalized == "" {
		return "Location: " + loc
	}
	return normalized + "\nLocation: " + loc
}

// Record is the fully composed text of one v3 message, before encryption.
type Record struct {
	Type          Type
	TargetID      int
	IsPlayerToPlayer bool
	Headline      string
	Body          string
	X, Y          int
	HasCoords     bool
}

// Text renders the full plain-text message (header, headline, body,
// optional location line). The body is HTML-stripped and word-wrapped here;
// the cipher is not applied.
func (r Record) Text() string {
	var b strings.Builder
	b.WriteString(HeaderLine(r.Type, r.TargetID, r.IsPlayerToPlayer))
	b.WriteByte('\n')
	if r.Headline != "" {
		b.WriteString("From: ")
		b.WriteString(r.Headline)
		b.WriteByte('\n')
	}
	body := StripHTML(r.Body)
	body = WordWrap(body)
	body = EnsureLocationLine(body, r.X, r.Y, r.HasCoords)
	b.WriteString(body)
	return b.String()
}

// EncryptedBytes renders the record to single-byte encoding and applies the
// legacy message cipher, ready to append to mdata<N>.dat.
func (r Record) EncryptedBytes(enc *crypto.Encryptor) []byte {
	sb := encoding.ToSingleByte(r.Text())
	return enc.EncryptBytes(sb)
}

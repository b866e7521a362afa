package document

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/btxtech/prontuario/internal/record"
)

// deaccent strips combining marks so "Evolução" slugs as "evolucao".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug lowercases s, strips accents, maps whitespace runs to a single
// underscore and drops everything outside [a-z0-9_-].
func Slug(s string) string {
	folded, _, err := transform.String(deaccent, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return b.String()
}

// SuggestedFileName proposes a download name for a rendered event
// document: <type-label>_<patient-name>_<date>.html, slugged.
func SuggestedFileName(ev record.Event, p record.Patient) string {
	date := time.UnixMilli(ev.CreatedAt).UTC().Format("2006-01-02")
	return Slug(record.TypeLabel(ev.Type)) + "_" + Slug(p.Name) + "_" + date + ".html"
}

// HistoryFileName proposes a download name for the full-history
// printout.
func HistoryFileName(p record.Patient) string {
	return "historico_" + Slug(p.Name) + ".html"
}

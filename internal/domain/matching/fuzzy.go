package matching

import (
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Umbral de Jaro-Winkler para considerar que un nombre de criadero matchea.
const breederMatchThreshold = 0.85

// fold pasa a minúsculas y quita acentos: "Criadero Peñón" ~ "criadero penon".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// breederScore devuelve 1 para substring y el Jaro-Winkler más alto contra
// el nombre completo, cada palabra del nombre y la parte local del email.
func breederScore(query, name, email string) float64 {
	q := fold(query)
	if q == "" {
		return 0
	}

	candidates := []string{fold(name)}
	candidates = append(candidates, strings.Fields(fold(name))...)
	if at := strings.IndexByte(email, '@'); at > 0 {
		candidates = append(candidates, fold(email[:at]))
	}
	if e := fold(email); e != "" && strings.Contains(e, q) {
		return 1
	}

	best := 0.0
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.Contains(c, q) {
			return 1
		}
		if score := smetrics.JaroWinkler(q, c, 0.7, 4); score > best {
			best = score
		}
	}
	return best
}

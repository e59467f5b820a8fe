package fiscal

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// spedTransformer decompõe (NFD), remove marcas diacríticas e recompõe (NFC).
var spedTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeSPEDText prepara um texto livre para campo texto do SPED:
// maiúsculas, sem acentos e sem o separador de campo "|".
func NormalizeSPEDText(s string) string {
	out, _, err := transform.String(spedTransformer, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "|", " ")
	return strings.ToUpper(strings.TrimSpace(out))
}

// Package textutil normaliza texto para búsquedas insensibles a mayúsculas y
// acentos (los nombres comerciales llegan escritos de cualquier forma).
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize devuelve el texto en minúsculas, sin espacios sobrantes y sin
// marcas diacríticas: "  Acetaminofén " -> "acetaminofen".
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

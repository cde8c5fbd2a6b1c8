package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName normaliza un nombre de artículo para la comparación de
// unicidad: recorta espacios, aplica NFC y case folding Unicode.
// "Filtro Olio" y "filtro olio " normalizan al mismo valor.
// El Caser se crea por llamada porque no es seguro para uso concurrente.
func NormalizeName(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

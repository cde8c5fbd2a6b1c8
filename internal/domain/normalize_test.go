package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-api/internal/domain"
)

func TestNormalizeName(t *testing.T) {
	casos := []struct {
		a, b string
	}{
		{"Filtro Olio", "filtro olio "},
		{"  FILTRO OLIO", "filtro olio"},
		{"Tornillería", "TORNILLERÍA"},
		{"Straße", "STRASSE"}, // case folding, no solo lowercase
	}
	for _, c := range casos {
		assert.Equal(t, domain.NormalizeName(c.a), domain.NormalizeName(c.b),
			"%q y %q deben normalizar igual", c.a, c.b)
	}

	assert.NotEqual(t, domain.NormalizeName("Filtro"), domain.NormalizeName("Filtros"))
}

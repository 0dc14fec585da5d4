package plano

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxaPara(t *testing.T) {
	valor := decimal.RequireFromString("1000.00")
	cases := []struct {
		nome  string
		plano Plano
		want  string
	}{
		{"sem taxa", Plano{}, "0"},
		{"fixa", Plano{TaxaPlanoTipo: TaxaFixa, TaxaPlanoValor: decimal.RequireFromString("35.50")}, "35.5"},
		{"percentual", Plano{TaxaPlanoTipo: TaxaPercentual, TaxaPlanoValor: decimal.RequireFromString("2.5")}, "25"},
	}
	for _, c := range cases {
		t.Run(c.nome, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(c.want).Equal(c.plano.TaxaPara(valor)))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Amil - PME", Plano{Operadora: "Amil", Tipo: TipoPME}.String())
}

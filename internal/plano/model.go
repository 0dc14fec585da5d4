package plano

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	TipoPME    = "PME"
	TipoPF     = "PF"
	TipoAdesao = "Adesão"

	TaxaFixa       = "fixa"
	TaxaPercentual = "percentual"
)

// Plano de uma operadora; (operadora, tipo) é único.
type Plano struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	Operadora            string          `gorm:"size:255;not null;uniqueIndex:idx_plano_operadora_tipo" json:"operadora"`
	Tipo                 string          `gorm:"size:50;not null;uniqueIndex:idx_plano_operadora_tipo" json:"tipo"`
	ComissionamentoTotal decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"comissionamento_total"`
	NumeroParcelas       int             `gorm:"not null" json:"numero_parcelas"`
	TaxaPlanoValor       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"taxa_plano_valor"`
	TaxaPlanoTipo        string          `gorm:"size:20" json:"taxa_plano_tipo"`
}

func (p Plano) String() string {
	return fmt.Sprintf("%s - %s", p.Operadora, p.Tipo)
}

// TaxaPara calcula a taxa do plano sobre o valor de uma venda.
func (p Plano) TaxaPara(valorPlano decimal.Decimal) decimal.Decimal {
	switch p.TaxaPlanoTipo {
	case TaxaFixa:
		return p.TaxaPlanoValor
	case TaxaPercentual:
		return valorPlano.Mul(p.TaxaPlanoValor).Div(decimal.NewFromInt(100)).Round(2)
	}
	return decimal.Zero
}

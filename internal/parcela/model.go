package parcela

import "github.com/shopspring/decimal"

// Parcela é o modelo de comissionamento de um plano: qual percentual
// do valor da venda é pago em cada parcela.
type Parcela struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	PlanoID            uint            `gorm:"not null;index" json:"plano"`
	NumeroParcela      int             `gorm:"not null" json:"numero_parcela"`
	PorcentagemParcela decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"porcentagem_parcela"`
}

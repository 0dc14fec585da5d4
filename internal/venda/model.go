package venda

import (
	"github.com/shopspring/decimal"

	"github.com/corretora/sistema-comissoes/internal/cliente"
	"github.com/corretora/sistema-comissoes/internal/consultor"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/plano"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

// Venda é uma proposta fechada. As parcelas de recebimento são geradas
// a partir do modelo de comissionamento do plano sempre que a venda é salva.
type Venda struct {
	ID                  uint                                `gorm:"primaryKey" json:"id"`
	NumeroProposta      string                              `gorm:"size:100;uniqueIndex;not null" json:"numero_proposta"`
	ClienteID           uint                                `gorm:"not null;index" json:"-"`
	Cliente             cliente.Cliente                     `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"cliente"`
	PlanoID             uint                                `gorm:"not null;index" json:"-"`
	Plano               plano.Plano                         `gorm:"foreignKey:PlanoID;constraint:OnDelete:CASCADE" json:"plano"`
	ConsultorID         uint                                `gorm:"not null;index" json:"-"`
	Consultor           consultor.Consultor                 `gorm:"foreignKey:ConsultorID;constraint:OnDelete:CASCADE" json:"consultor"`
	ValorPlano          decimal.Decimal                     `gorm:"type:decimal(10,2);not null" json:"valor_plano"`
	DescontoConsultor   decimal.Decimal                     `gorm:"type:decimal(10,2);not null;default:0" json:"desconto_consultor"`
	TaxaPlano           decimal.Decimal                     `gorm:"type:decimal(10,2);not null;default:0" json:"taxa_plano"`
	DataVenda           models.Data                         `gorm:"not null;index" json:"data_venda"`
	DataVigencia        models.Data                         `gorm:"not null" json:"data_vigencia"`
	DataVencimento      models.Data                         `gorm:"not null" json:"data_vencimento"`
	ParcelasRecebimento []recebimento.ControleDeRecebimento `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"parcelas_recebimento"`
}

// ValorLiquido é o valor do plano descontadas a comissão do consultor e a taxa.
func (v Venda) ValorLiquido() decimal.Decimal {
	return v.ValorPlano.Sub(v.DescontoConsultor).Sub(v.TaxaPlano)
}

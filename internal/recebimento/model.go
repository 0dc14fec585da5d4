package recebimento

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/parcela"
)

// ControleDeRecebimento é uma parcela de comissão esperada de uma venda.
// É gerada pelo backend ao salvar a venda; o usuário só registra o recebimento.
type ControleDeRecebimento struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	VendaID                 uint            `gorm:"not null;index" json:"venda"`
	ParcelaID               uint            `gorm:"not null;index" json:"-"`
	Parcela                 parcela.Parcela `gorm:"foreignKey:ParcelaID" json:"parcela"`
	ValorParcela            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_parcela"`
	DataPrevistaRecebimento models.Data     `gorm:"not null" json:"data_prevista_recebimento"`
	DataRecebimento         *models.Data    `json:"data_recebimento"`
	Status                  string          `gorm:"size:20;not null;default:'Não Recebido';index" json:"status"`
	NumeroExtrato           *string         `gorm:"size:100" json:"numero_extrato"`
}

func (ControleDeRecebimento) TableName() string { return "controle_de_recebimentos" }

func (c ControleDeRecebimento) Recebida() bool {
	return models.Recebido(c.Status)
}

// DiasAtraso usa a data de recebimento quando existe e o dia de hoje
// caso contrário; recebimentos antecipados contam zero.
func DiasAtraso(prevista models.Data, recebimento *models.Data, agora time.Time) int {
	ref := models.DataDe(agora)
	if recebimento != nil && !recebimento.IsZero() {
		ref = *recebimento
	}
	if d := models.DiasEntre(ref, prevista); d > 0 {
		return d
	}
	return 0
}

func (c ControleDeRecebimento) DiasAtraso(agora time.Time) int {
	return DiasAtraso(c.DataPrevistaRecebimento, c.DataRecebimento, agora)
}

package consultor

import "github.com/shopspring/decimal"

// ConsultorRequest é usado em POST /api/consultor/ e PUT /api/consultor/{id}/
type ConsultorRequest struct {
	Nome     string  `json:"nome" validate:"required,max=255"`
	Telefone *string `json:"telefone" validate:"omitempty,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

func (req ConsultorRequest) aplicar(c *Consultor) {
	c.Nome = req.Nome
	c.Telefone = req.Telefone
	c.Email = req.Email
}

type ResumoConsultorDTO struct {
	ID                uint            `json:"id"`
	Nome              string          `json:"nome"`
	Email             *string         `json:"email"`
	Telefone          *string         `json:"telefone"`
	TotalVendas       int             `json:"total_vendas"`
	ParcelasRecebidas int             `json:"parcelas_recebidas"`
	ParcelasPendentes int             `json:"parcelas_pendentes"`
	ParcelasAtrasadas int             `json:"parcelas_atrasadas"`
	ComissaoRecebida  decimal.Decimal `json:"comissao_recebida"`
	ComissaoAReceber  decimal.Decimal `json:"comissao_a_receber"`
}

package parcela

import "github.com/shopspring/decimal"

// ParcelaRequest é usado em POST /api/parcela/ e PUT /api/parcela/{id}/
type ParcelaRequest struct {
	Plano              uint             `json:"plano" validate:"required"`
	NumeroParcela      *int             `json:"numero_parcela" validate:"required,gte=0"`
	PorcentagemParcela *decimal.Decimal `json:"porcentagem_parcela" validate:"required"`
}

func (req ParcelaRequest) aplicar(p *Parcela) {
	p.PlanoID = req.Plano
	p.NumeroParcela = *req.NumeroParcela
	p.PorcentagemParcela = *req.PorcentagemParcela
}

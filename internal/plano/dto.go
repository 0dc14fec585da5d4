package plano

import "github.com/shopspring/decimal"

// PlanoRequest é usado em POST /api/plano/ e PUT /api/plano/{id}/
type PlanoRequest struct {
	Operadora            string           `json:"operadora" validate:"required,max=255"`
	Tipo                 string           `json:"tipo" validate:"required,oneof=PME PF Adesão"`
	ComissionamentoTotal *decimal.Decimal `json:"comissionamento_total" validate:"required"`
	NumeroParcelas       *int             `json:"numero_parcelas" validate:"required,gte=0"`
	TaxaPlanoValor       *decimal.Decimal `json:"taxa_plano_valor"`
	TaxaPlanoTipo        string           `json:"taxa_plano_tipo" validate:"omitempty,oneof=fixa percentual"`
}

func (req PlanoRequest) aplicar(p *Plano) {
	p.Operadora = req.Operadora
	p.Tipo = req.Tipo
	p.ComissionamentoTotal = *req.ComissionamentoTotal
	p.NumeroParcelas = *req.NumeroParcelas
	p.TaxaPlanoValor = decimal.Zero
	if req.TaxaPlanoValor != nil {
		p.TaxaPlanoValor = *req.TaxaPlanoValor
	}
	p.TaxaPlanoTipo = req.TaxaPlanoTipo
}

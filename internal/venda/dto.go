package venda

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/utils"
)

const msgData = "Formato inválido para data. Use um dos formatos a seguir: YYYY-MM-DD."

// VendaRequest é usado em POST /api/venda/ e PUT /api/venda/{id}/.
// Na escrita as relações vêm como *_id; na leitura voltam aninhadas.
type VendaRequest struct {
	NumeroProposta    string           `json:"numero_proposta" validate:"required,max=100"`
	ClienteID         uint             `json:"cliente_id" validate:"required"`
	PlanoID           uint             `json:"plano_id" validate:"required"`
	ConsultorID       uint             `json:"consultor_id" validate:"required"`
	ValorPlano        *decimal.Decimal `json:"valor_plano" validate:"required"`
	DescontoConsultor *decimal.Decimal `json:"desconto_consultor"`
	TaxaPlano         *decimal.Decimal `json:"taxa_plano"`
	DataVenda         string           `json:"data_venda"`
	DataVigencia      string           `json:"data_vigencia" validate:"required"`
	DataVencimento    string           `json:"data_vencimento" validate:"required"`
}

func parseDataCampo(erros utils.ErrosCampo, campo, valor string) models.Data {
	if valor == "" {
		return models.Data{}
	}
	d, err := models.ParseData(valor)
	if err != nil {
		erros.Adicionar(campo, msgData)
	}
	return d
}

// paraModelo valida o corpo e preenche v. A taxa do plano fica nil quando
// omitida, para ser derivada do plano no handler.
func (req VendaRequest) paraModelo(v *Venda, hoje time.Time) (utils.ErrosCampo, bool) {
	erros := utils.Validar(req)

	dataVenda := parseDataCampo(erros, "data_venda", req.DataVenda)
	if req.DataVenda == "" {
		dataVenda = models.DataDe(hoje)
	}
	vigencia := parseDataCampo(erros, "data_vigencia", req.DataVigencia)
	vencimento := parseDataCampo(erros, "data_vencimento", req.DataVencimento)
	if !erros.Vazio() {
		return erros, false
	}

	v.NumeroProposta = req.NumeroProposta
	v.ClienteID = req.ClienteID
	v.PlanoID = req.PlanoID
	v.ConsultorID = req.ConsultorID
	v.ValorPlano = *req.ValorPlano
	v.DescontoConsultor = decimal.Zero
	if req.DescontoConsultor != nil {
		v.DescontoConsultor = *req.DescontoConsultor
	}
	taxaInformada := req.TaxaPlano != nil
	if taxaInformada {
		v.TaxaPlano = *req.TaxaPlano
	}
	v.DataVenda = dataVenda
	v.DataVigencia = vigencia
	v.DataVencimento = vencimento
	return erros, taxaInformada
}

package recebimento

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/utils"
)

const msgData = "Formato inválido para data. Use um dos formatos a seguir: YYYY-MM-DD."

// RecebimentoRequest é usado no PUT /api/controlederecebimento/{id}/
type RecebimentoRequest struct {
	Venda                   uint             `json:"venda" validate:"required"`
	Parcela                 uint             `json:"parcela" validate:"required"`
	ValorParcela            *decimal.Decimal `json:"valor_parcela" validate:"required"`
	DataPrevistaRecebimento string           `json:"data_prevista_recebimento" validate:"required"`
	DataRecebimento         *string          `json:"data_recebimento"`
	Status                  string           `json:"status"`
	NumeroExtrato           *string          `json:"numero_extrato" validate:"omitempty,max=100"`
}

// Alteracao é o resultado validado de um PATCH: só os campos presentes no corpo.
type Alteracao struct {
	DataRecebimento    *models.Data
	DataRecebimentoSet bool
	NumeroExtrato      *string
	NumeroExtratoSet   bool
	Status             string
}

// Vazia indica que o PATCH não trouxe nenhum campo editável.
func (a Alteracao) Vazia() bool {
	return !a.DataRecebimentoSet && !a.NumeroExtratoSet && a.Status == ""
}

// Colunas devolve o mapa usado em gorm Updates.
func (a Alteracao) Colunas() map[string]any {
	cols := map[string]any{}
	if a.DataRecebimentoSet {
		if a.DataRecebimento == nil {
			cols["data_recebimento"] = nil
		} else {
			cols["data_recebimento"] = *a.DataRecebimento
		}
	}
	if a.NumeroExtratoSet {
		if a.NumeroExtrato == nil {
			cols["numero_extrato"] = nil
		} else {
			cols["numero_extrato"] = *a.NumeroExtrato
		}
	}
	if a.Status != "" {
		cols["status"] = a.Status
	}
	return cols
}

// Aplicar copia a alteração para o registro em memória.
func (a Alteracao) Aplicar(c *ControleDeRecebimento) {
	if a.DataRecebimentoSet {
		c.DataRecebimento = a.DataRecebimento
	}
	if a.NumeroExtratoSet {
		c.NumeroExtrato = a.NumeroExtrato
	}
	if a.Status != "" {
		c.Status = a.Status
	}
}

func parseDataOpcional(raw json.RawMessage) (*models.Data, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := models.ParseData(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseStatus(raw json.RawMessage) (string, string) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", "Não é uma string válida."
	}
	st, ok := models.NormalizarStatus(s)
	if !ok {
		return "", fmt.Sprintf("\"%s\" não é um escolha válido.", s)
	}
	return st, ""
}

// ParseAlteracao valida o corpo de um PATCH parcial. Campos desconhecidos são ignorados.
func ParseAlteracao(corpo map[string]json.RawMessage) (Alteracao, utils.ErrosCampo) {
	var a Alteracao
	erros := utils.ErrosCampo{}

	if raw, ok := corpo["data_recebimento"]; ok {
		d, err := parseDataOpcional(raw)
		if err != nil {
			erros.Adicionar("data_recebimento", msgData)
		} else {
			a.DataRecebimento, a.DataRecebimentoSet = d, true
		}
	}

	if raw, ok := corpo["numero_extrato"]; ok {
		if string(raw) == "null" {
			a.NumeroExtratoSet = true
		} else {
			var s string
			switch {
			case json.Unmarshal(raw, &s) != nil:
				erros.Adicionar("numero_extrato", "Não é uma string válida.")
			case len([]rune(s)) > 100:
				erros.Adicionar("numero_extrato", "Certifique-se de que este campo não tenha mais de 100 caracteres.")
			default:
				a.NumeroExtrato, a.NumeroExtratoSet = &s, true
			}
		}
	}

	if raw, ok := corpo["status"]; ok {
		st, msg := parseStatus(raw)
		if msg != "" {
			erros.Adicionar("status", msg)
		} else {
			a.Status = st
		}
	}
	return a, erros
}

// paraModelo valida e converte o corpo de um PUT.
func (req RecebimentoRequest) paraModelo(c *ControleDeRecebimento) utils.ErrosCampo {
	erros := utils.Validar(req)

	prevista, err := models.ParseData(req.DataPrevistaRecebimento)
	if req.DataPrevistaRecebimento != "" && err != nil {
		erros.Adicionar("data_prevista_recebimento", msgData)
	}
	var recebida *models.Data
	if req.DataRecebimento != nil && strings.TrimSpace(*req.DataRecebimento) != "" {
		d, err := models.ParseData(*req.DataRecebimento)
		if err != nil {
			erros.Adicionar("data_recebimento", msgData)
		}
		recebida = &d
	}
	status := models.StatusNaoRecebido
	if req.Status != "" {
		st, ok := models.NormalizarStatus(req.Status)
		if !ok {
			erros.Adicionar("status", fmt.Sprintf("\"%s\" não é um escolha válido.", req.Status))
		}
		status = st
	}
	if !erros.Vazio() {
		return erros
	}

	c.VendaID = req.Venda
	c.ParcelaID = req.Parcela
	c.ValorParcela = *req.ValorParcela
	c.DataPrevistaRecebimento = prevista
	c.DataRecebimento = recebida
	c.Status = status
	c.NumeroExtrato = req.NumeroExtrato
	return erros
}

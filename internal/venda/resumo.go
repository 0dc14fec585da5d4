package venda

import (
	"fmt"
	"strings"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

const (
	CorSucesso = "success"
	CorAlerta  = "warning"
	CorPerigo  = "danger"
)

// Resumo é o progresso de recebimento de uma venda.
type Resumo struct {
	Total      int     `json:"total"`
	Recebidas  int     `json:"recebidas"`
	Percentual float64 `json:"percentual"`
	Cor        string  `json:"cor"`
	Finalizada bool    `json:"finalizada"`
}

// Resumir calcula o progresso. Venda sem parcelas conta como finalizada.
func Resumir(v Venda) Resumo {
	r := Resumo{Total: len(v.ParcelasRecebimento), Finalizada: true}
	for _, p := range v.ParcelasRecebimento {
		if p.Recebida() {
			r.Recebidas++
		} else {
			r.Finalizada = false
		}
	}
	if r.Total > 0 {
		r.Percentual = float64(r.Recebidas) / float64(r.Total) * 100
	}
	r.Cor = CorProgresso(r.Percentual)
	return r
}

func CorProgresso(percentual float64) string {
	switch {
	case percentual >= 100:
		return CorSucesso
	case percentual >= 50:
		return CorAlerta
	}
	return CorPerigo
}

type FiltroStatus string

const (
	EmAndamento FiltroStatus = "Em andamento"
	Finalizados FiltroStatus = "Finalizados"
	Todos       FiltroStatus = "Todos"
)

// ParseFiltroStatus aceita os rótulos sem diferenciar maiúsculas; vazio é "Em andamento".
func ParseFiltroStatus(s string) (FiltroStatus, error) {
	s = strings.TrimSpace(s)
	for _, f := range []FiltroStatus{EmAndamento, Finalizados, Todos} {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	if s == "" {
		return EmAndamento, nil
	}
	return "", fmt.Errorf("filtro de status inválido %q: use %q, %q ou %q", s, EmAndamento, Finalizados, Todos)
}

// Filtro combina busca, status e período; a venda aparece só se passar nos três.
type Filtro struct {
	Busca  string
	Status FiltroStatus
	Inicio *models.Data
	Fim    *models.Data
}

func (f Filtro) CorrespondeBusca(v Venda) bool {
	termo := strings.ToLower(f.Busca)
	if termo == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.NumeroProposta), termo) ||
		strings.Contains(strings.ToLower(v.Cliente.Nome), termo)
}

func (f Filtro) CorrespondeStatus(v Venda) bool {
	switch f.Status {
	case EmAndamento:
		return !Resumir(v).Finalizada
	case Finalizados:
		return Resumir(v).Finalizada
	}
	return true
}

func (f Filtro) CorrespondePeriodo(v Venda) bool {
	if f.Inicio != nil && !f.Inicio.IsZero() && v.DataVenda.Antes(*f.Inicio) {
		return false
	}
	if f.Fim != nil && !f.Fim.IsZero() && v.DataVenda.Depois(*f.Fim) {
		return false
	}
	return true
}

func (f Filtro) Corresponde(v Venda) bool {
	return f.CorrespondeBusca(v) && f.CorrespondeStatus(v) && f.CorrespondePeriodo(v)
}

// Filtrar devolve um novo slice; a entrada não é alterada.
func Filtrar(vendas []Venda, f Filtro) []Venda {
	out := make([]Venda, 0, len(vendas))
	for _, v := range vendas {
		if f.Corresponde(v) {
			out = append(out, v)
		}
	}
	return out
}

// MesclarRecebimento troca, em qualquer venda, a parcela com o mesmo id
// pela versão devolvida pelo servidor. Não altera o slice recebido;
// aplicar a mesma resposta duas vezes dá o mesmo resultado.
func MesclarRecebimento(vendas []Venda, atualizado recebimento.ControleDeRecebimento) ([]Venda, bool) {
	for i, v := range vendas {
		for j, p := range v.ParcelasRecebimento {
			if p.ID != atualizado.ID {
				continue
			}
			parcelas := make([]recebimento.ControleDeRecebimento, len(v.ParcelasRecebimento))
			copy(parcelas, v.ParcelasRecebimento)
			if atualizado.Parcela.ID == 0 {
				atualizado.Parcela = p.Parcela
			}
			parcelas[j] = atualizado

			out := make([]Venda, len(vendas))
			copy(out, vendas)
			out[i].ParcelasRecebimento = parcelas
			return out, true
		}
	}
	return vendas, false
}

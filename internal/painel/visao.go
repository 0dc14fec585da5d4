package painel

import (
	"time"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

// Visao é uma foto do painel. Os slices são compartilhados com o estado
// interno e devem ser tratados como somente leitura.
type Visao struct {
	Carregando    bool
	Erro          string
	BuscaDigitada string
	Busca         string
	Status        venda.FiltroStatus
	Inicio        *models.Data
	Fim           *models.Data
	TotalVendas   int
	Vendas        []LinhaVenda
	Encerrado     bool
}

type LinhaVenda struct {
	Venda    venda.Venda
	Resumo   venda.Resumo
	Aberta   bool
	Parcelas []LinhaParcela
}

// LinhaParcela traz os valores exibidos: o rascunho, quando existe,
// prevalece sobre o valor do servidor.
type LinhaParcela struct {
	Recebimento     recebimento.ControleDeRecebimento
	DataRecebimento string
	NumeroExtrato   string
	EditandoData    bool
	EditandoExtrato bool
	DiasAtraso      int
	Recebida        bool
}

func (e *Engine) montarVisao() Visao {
	st := &e.st
	v := Visao{
		Carregando:    st.carregando,
		Erro:          st.erro,
		BuscaDigitada: st.buscaDigitada,
		Busca:         st.filtro.Busca,
		Status:        st.filtro.Status,
		Inicio:        st.filtro.Inicio,
		Fim:           st.filtro.Fim,
		TotalVendas:   len(st.vendas),
	}
	agora := e.relogio.Agora()
	for _, vd := range venda.Filtrar(st.vendas, st.filtro) {
		linha := LinhaVenda{Venda: vd, Resumo: venda.Resumir(vd), Aberta: st.abertas[vd.ID]}
		linha.Parcelas = make([]LinhaParcela, 0, len(vd.ParcelasRecebimento))
		for _, p := range vd.ParcelasRecebimento {
			linha.Parcelas = append(linha.Parcelas, e.linhaParcela(p, agora))
		}
		v.Vendas = append(v.Vendas, linha)
	}
	return v
}

func (e *Engine) linhaParcela(p recebimento.ControleDeRecebimento, agora time.Time) LinhaParcela {
	l := LinhaParcela{Recebimento: p, DiasAtraso: p.DiasAtraso(agora), Recebida: p.Recebida()}
	if p.DataRecebimento != nil && !p.DataRecebimento.IsZero() {
		l.DataRecebimento = p.DataRecebimento.String()
	}
	if p.NumeroExtrato != nil {
		l.NumeroExtrato = *p.NumeroExtrato
	}
	if r, ok := e.st.rascunhos[chaveRascunho{p.ID, CampoDataRecebimento}]; ok {
		l.DataRecebimento, l.EditandoData = r, true
	}
	if r, ok := e.st.rascunhos[chaveRascunho{p.ID, CampoNumeroExtrato}]; ok {
		l.NumeroExtrato, l.EditandoExtrato = r, true
	}
	return l
}

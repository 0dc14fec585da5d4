// Package dashboard reduz as coleções da API às séries dos gráficos.
package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corretora/sistema-comissoes/internal/consultor"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/plano"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

const MsgErro = "Erro ao carregar dados do dashboard. Por favor, tente novamente mais tarde."

var Meses = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

type Fonte interface {
	Vendas(ctx context.Context) ([]venda.Venda, error)
	Consultores(ctx context.Context) ([]consultor.Consultor, error)
	Planos(ctx context.Context) ([]plano.Plano, error)
	Recebimentos(ctx context.Context, filtros url.Values) ([]recebimento.ControleDeRecebimento, error)
}

// Serie é um conjunto de rótulos com as contagens correspondentes.
type Serie struct {
	Rotulos []string `json:"rotulos"`
	Valores []int    `json:"valores"`
}

func (s *Serie) adicionar(rotulo string, valor int) {
	s.Rotulos = append(s.Rotulos, rotulo)
	s.Valores = append(s.Valores, valor)
}

type Dados struct {
	TotalVendas  int   `json:"total_vendas"`
	PorMes       Serie `json:"por_mes"`
	PorSemana    Serie `json:"por_semana"`
	PorConsultor Serie `json:"por_consultor"`
	PorPlano     Serie `json:"por_plano"`
	PorStatus    Serie `json:"por_status"`
}

// Carregar busca as quatro coleções em paralelo; qualquer falha cancela as demais.
func Carregar(ctx context.Context, f Fonte, agora time.Time) (Dados, error) {
	var (
		vendas       []venda.Venda
		consultores  []consultor.Consultor
		planos       []plano.Plano
		recebimentos []recebimento.ControleDeRecebimento
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vendas, err = f.Vendas(ctx)
		return err
	})
	g.Go(func() (err error) {
		consultores, err = f.Consultores(ctx)
		return err
	})
	g.Go(func() (err error) {
		planos, err = f.Planos(ctx)
		return err
	})
	g.Go(func() (err error) {
		recebimentos, err = f.Recebimentos(ctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dados{}, fmt.Errorf("carregar dashboard: %w", err)
	}

	return Dados{
		TotalVendas:  len(vendas),
		PorMes:       VendasPorMes(vendas),
		PorSemana:    VendasPorSemana(vendas, agora),
		PorConsultor: VendasPorConsultor(vendas, consultores),
		PorPlano:     VendasPorPlano(vendas, planos),
		PorStatus:    RecebimentosPorStatus(recebimentos),
	}, nil
}

// VendasPorMes conta pelo mês da data_venda, juntando todos os anos.
func VendasPorMes(vendas []venda.Venda) Serie {
	var cont [12]int
	for _, v := range vendas {
		if v.DataVenda.IsZero() {
			continue
		}
		cont[v.DataVenda.Month()-1]++
	}
	s := Serie{}
	for i, m := range Meses {
		s.adicionar(m, cont[i])
	}
	return s
}

// VendasPorSemana cobre as quatro últimas semanas (domingo a sábado),
// terminando na semana corrente.
func VendasPorSemana(vendas []venda.Venda, agora time.Time) Serie {
	hoje := models.DataDe(agora)
	domingo := hoje.AddDias(-int(hoje.Weekday()))
	s := Serie{}
	for i := 0; i < 4; i++ {
		inicio := domingo.AddDias(-7 * (3 - i))
		fim := inicio.AddDias(7)
		n := 0
		for _, v := range vendas {
			if !v.DataVenda.Antes(inicio) && v.DataVenda.Antes(fim) {
				n++
			}
		}
		s.adicionar(fmt.Sprintf("Semana %d", i+1), n)
	}
	return s
}

// VendasPorConsultor segue a ordem da lista de consultores.
func VendasPorConsultor(vendas []venda.Venda, consultores []consultor.Consultor) Serie {
	cont := make(map[uint]int)
	for _, v := range vendas {
		cont[v.Consultor.ID]++
	}
	s := Serie{}
	for _, c := range consultores {
		s.adicionar(c.Nome, cont[c.ID])
	}
	return s
}

// VendasPorPlano rotula cada plano como "operadora - tipo".
func VendasPorPlano(vendas []venda.Venda, planos []plano.Plano) Serie {
	cont := make(map[uint]int)
	for _, v := range vendas {
		cont[v.Plano.ID]++
	}
	s := Serie{}
	for _, p := range planos {
		s.adicionar(p.String(), cont[p.ID])
	}
	return s
}

// RecebimentosPorStatus mantém a ordem em que cada status aparece.
func RecebimentosPorStatus(recebimentos []recebimento.ControleDeRecebimento) Serie {
	idx := make(map[string]int)
	s := Serie{}
	for _, r := range recebimentos {
		i, ok := idx[r.Status]
		if !ok {
			idx[r.Status] = len(s.Rotulos)
			s.adicionar(r.Status, 1)
			continue
		}
		s.Valores[i]++
	}
	return s
}

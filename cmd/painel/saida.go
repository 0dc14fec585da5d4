package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/corretora/sistema-comissoes/internal/dashboard"
	"github.com/corretora/sistema-comissoes/internal/painel"
)

func imprimirVendas(w io.Writer, v painel.Visao) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROPOSTA\tCLIENTE\tPLANO\tDATA VENDA\tVALOR\tRECEBIDAS\tPROGRESSO")
	for _, l := range v.Vendas {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d/%d\t%.0f%% (%s)\n",
			l.Venda.ID, l.Venda.NumeroProposta, l.Venda.Cliente.Nome, l.Venda.Plano.String(),
			l.Venda.DataVenda.Formatar(), l.Venda.ValorPlano.StringFixed(2),
			l.Resumo.Recebidas, l.Resumo.Total, l.Resumo.Percentual, l.Resumo.Cor)
		if !l.Aberta {
			continue
		}
		for _, p := range l.Parcelas {
			fmt.Fprintf(tw, "\t  #%d rec %d\t%s\tprevista %s\trecebida %s\t%s\t%s\tatraso %d\n",
				p.Recebimento.Parcela.NumeroParcela, p.Recebimento.ID,
				p.Recebimento.Status, p.Recebimento.DataPrevistaRecebimento.Formatar(),
				vazio(p.DataRecebimento), p.Recebimento.ValorParcela.StringFixed(2),
				vazio(p.NumeroExtrato), p.DiasAtraso)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d de %d venda(s) | status: %s\n", len(v.Vendas), v.TotalVendas, v.Status)
	return err
}

func vazio(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func imprimirSerie(w io.Writer, titulo string, s dashboard.Serie) {
	fmt.Fprintln(w, titulo)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, r := range s.Rotulos {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", r, s.Valores[i], strings.Repeat("#", s.Valores[i]))
	}
	_ = tw.Flush()
}

func imprimirDashboard(w io.Writer, d dashboard.Dados) error {
	fmt.Fprintf(w, "Total de vendas: %d\n\n", d.TotalVendas)
	imprimirSerie(w, "Vendas por mês", d.PorMes)
	imprimirSerie(w, "Vendas nas últimas semanas", d.PorSemana)
	imprimirSerie(w, "Vendas por consultor", d.PorConsultor)
	imprimirSerie(w, "Vendas por plano", d.PorPlano)
	imprimirSerie(w, "Parcelas por status", d.PorStatus)
	return nil
}

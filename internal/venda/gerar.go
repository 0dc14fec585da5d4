package venda

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/parcela"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

const diasEntreParcelas = 30

var cem = decimal.NewFromInt(100)

// GerarRecebimentos monta uma parcela de recebimento por modelo do plano.
// A primeira incide sobre o valor líquido, as demais sobre o valor cheio;
// a data prevista avança 30 dias por parcela a partir da data da venda.
func GerarRecebimentos(v Venda, modelos []parcela.Parcela) []recebimento.ControleDeRecebimento {
	ordenados := make([]parcela.Parcela, len(modelos))
	copy(ordenados, modelos)
	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].NumeroParcela < ordenados[j].NumeroParcela
	})

	liquido := v.ValorLiquido()
	out := make([]recebimento.ControleDeRecebimento, 0, len(ordenados))
	for _, p := range ordenados {
		base := v.ValorPlano
		if p.NumeroParcela == 1 {
			base = liquido
		}
		out = append(out, recebimento.ControleDeRecebimento{
			VendaID:                 v.ID,
			ParcelaID:               p.ID,
			Parcela:                 p,
			ValorParcela:            base.Mul(p.PorcentagemParcela).Div(cem).Round(2),
			DataPrevistaRecebimento: v.DataVenda.AddDias(diasEntreParcelas * (p.NumeroParcela - 1)),
			Status:                  models.StatusNaoRecebido,
		})
	}
	return out
}

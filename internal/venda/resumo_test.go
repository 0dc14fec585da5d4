package venda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora/sistema-comissoes/internal/cliente"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

func parcelas(status ...string) []recebimento.ControleDeRecebimento {
	out := make([]recebimento.ControleDeRecebimento, len(status))
	for i, s := range status {
		out[i] = recebimento.ControleDeRecebimento{ID: uint(i + 1), Status: s}
	}
	return out
}

func TestResumir(t *testing.T) {
	casos := []struct {
		nome       string
		status     []string
		finalizada bool
		percentual float64
		cor        string
	}{
		{"sem parcelas", nil, true, 0, CorPerigo},
		{"todas recebidas", []string{"Recebido", "recebido", "RECEBIDO"}, true, 100, CorSucesso},
		{"metade", []string{"Recebido", "Não Recebido"}, false, 50, CorAlerta},
		{"pendente", []string{"Pendente", "Não Recebido", "Recebido"}, false, 100.0 / 3, CorPerigo},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			r := Resumir(Venda{ParcelasRecebimento: parcelas(c.status...)})
			assert.Equal(t, c.finalizada, r.Finalizada)
			assert.InDelta(t, c.percentual, r.Percentual, 0.0001)
			assert.Equal(t, c.cor, r.Cor)
			assert.Equal(t, len(c.status), r.Total)
		})
	}
}

func TestParseFiltroStatus(t *testing.T) {
	f, err := ParseFiltroStatus("")
	require.NoError(t, err)
	assert.Equal(t, EmAndamento, f)

	f, err = ParseFiltroStatus("finalizados")
	require.NoError(t, err)
	assert.Equal(t, Finalizados, f)

	_, err = ParseFiltroStatus("Cancelados")
	assert.Error(t, err)
}

func TestBuscaPorPropostaOuCliente(t *testing.T) {
	vendas := []Venda{
		{ID: 1, NumeroProposta: "P-1", Cliente: cliente.Cliente{Nome: "Ana"}},
		{ID: 2, NumeroProposta: "P-2", Cliente: cliente.Cliente{Nome: "Beto"}},
	}

	got := Filtrar(vendas, Filtro{Busca: "ana", Status: Todos})
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	assert.Len(t, Filtrar(vendas, Filtro{Busca: "p-", Status: Todos}), 2)
}

func TestFiltroDeStatus(t *testing.T) {
	v := Venda{ParcelasRecebimento: parcelas("Pendente", "Recebido")}

	assert.True(t, Filtro{Status: EmAndamento}.Corresponde(v))
	assert.False(t, Filtro{Status: Finalizados}.Corresponde(v))
	assert.True(t, Filtro{Status: Todos}.Corresponde(v))

	vazia := Venda{}
	assert.False(t, Filtro{Status: EmAndamento}.Corresponde(vazia))
	assert.True(t, Filtro{Status: Finalizados}.Corresponde(vazia))
}

// Cada predicado sozinho precisa conseguir excluir a venda.
func TestFiltroConjuncao(t *testing.T) {
	v := Venda{
		NumeroProposta:      "P-10",
		Cliente:             cliente.Cliente{Nome: "Carla"},
		DataVenda:           models.NovaData(2024, 3, 10),
		ParcelasRecebimento: parcelas("Não Recebido"),
	}
	inicio, fim := models.NovaData(2024, 3, 1), models.NovaData(2024, 3, 31)
	base := Filtro{Busca: "carla", Status: EmAndamento, Inicio: &inicio, Fim: &fim}
	require.True(t, base.Corresponde(v))

	semBusca := base
	semBusca.Busca = "zzz"
	assert.False(t, semBusca.Corresponde(v))
	assert.True(t, semBusca.CorrespondeStatus(v) && semBusca.CorrespondePeriodo(v))

	semStatus := base
	semStatus.Status = Finalizados
	assert.False(t, semStatus.Corresponde(v))
	assert.True(t, semStatus.CorrespondeBusca(v) && semStatus.CorrespondePeriodo(v))

	depois := models.NovaData(2024, 3, 11)
	semPeriodo := base
	semPeriodo.Inicio = &depois
	assert.False(t, semPeriodo.Corresponde(v))
	assert.True(t, semPeriodo.CorrespondeBusca(v) && semPeriodo.CorrespondeStatus(v))

	antes := models.NovaData(2024, 3, 9)
	semPeriodo.Inicio, semPeriodo.Fim = nil, &antes
	assert.False(t, semPeriodo.Corresponde(v))
}

func TestPeriodoInclusivo(t *testing.T) {
	d := models.NovaData(2024, 5, 20)
	v := Venda{DataVenda: d}
	assert.True(t, Filtro{Status: Todos, Inicio: &d, Fim: &d}.Corresponde(v))
}

func TestMesclarRecebimentoIdempotente(t *testing.T) {
	vendas := []Venda{
		{ID: 1, ParcelasRecebimento: parcelas("Não Recebido", "Não Recebido")},
		{ID: 2, ParcelasRecebimento: []recebimento.ControleDeRecebimento{{ID: 30, Status: "Não Recebido"}}},
	}
	extrato := "EXT-9"
	resposta := recebimento.ControleDeRecebimento{ID: 30, VendaID: 2, Status: "Recebido", NumeroExtrato: &extrato}

	uma, ok := MesclarRecebimento(vendas, resposta)
	require.True(t, ok)
	duas, ok := MesclarRecebimento(uma, resposta)
	require.True(t, ok)

	assert.Equal(t, uma, duas)
	assert.Equal(t, "Recebido", duas[1].ParcelasRecebimento[0].Status)
	assert.Equal(t, "Não Recebido", vendas[1].ParcelasRecebimento[0].Status, "entrada intacta")

	_, ok = MesclarRecebimento(vendas, recebimento.ControleDeRecebimento{ID: 999})
	assert.False(t, ok)
}

package consultor

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

func TestMontarResumoConsultorDTO(t *testing.T) {
	agora := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	recebida := models.NovaData(2024, 1, 10)
	lista := []recebimento.ControleDeRecebimento{
		{ValorParcela: decimal.RequireFromString("100.00"), Status: "Recebido", DataPrevistaRecebimento: models.NovaData(2024, 1, 1), DataRecebimento: &recebida},
		{ValorParcela: decimal.RequireFromString("80.50"), Status: "Não Recebido", DataPrevistaRecebimento: models.NovaData(2024, 2, 1)},
		{ValorParcela: decimal.RequireFromString("80.50"), Status: "Não Recebido", DataPrevistaRecebimento: models.NovaData(2024, 4, 1)},
	}

	dto := MontarResumoConsultorDTO(Consultor{ID: 3, Nome: "Carla"}, 2, lista, agora)

	assert.Equal(t, uint(3), dto.ID)
	assert.Equal(t, 2, dto.TotalVendas)
	assert.Equal(t, 1, dto.ParcelasRecebidas)
	assert.Equal(t, 2, dto.ParcelasPendentes)
	assert.Equal(t, 1, dto.ParcelasAtrasadas)
	assert.True(t, decimal.RequireFromString("100").Equal(dto.ComissaoRecebida))
	assert.True(t, decimal.RequireFromString("161").Equal(dto.ComissaoAReceber))
}

func TestMontarResumoSemVendas(t *testing.T) {
	dto := MontarResumoConsultorDTO(Consultor{ID: 1, Nome: "Bia"}, 0, nil, time.Now())
	assert.True(t, dto.ComissaoRecebida.IsZero())
	assert.Zero(t, dto.ParcelasPendentes)
}

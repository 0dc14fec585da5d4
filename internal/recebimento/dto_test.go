package recebimento

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora/sistema-comissoes/internal/models"
)

func corpo(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestParseAlteracaoSomenteCamposPresentes(t *testing.T) {
	a, erros := ParseAlteracao(corpo(t, `{"numero_extrato":"EXT-9","valor_parcela":"1"}`))
	require.True(t, erros.Vazio())
	assert.Equal(t, map[string]any{"numero_extrato": "EXT-9"}, a.Colunas())
	assert.False(t, a.Vazia())
}

func TestParseAlteracaoLimpaData(t *testing.T) {
	for _, v := range []string{`null`, `""`} {
		a, erros := ParseAlteracao(corpo(t, `{"data_recebimento":`+v+`}`))
		require.True(t, erros.Vazio())
		assert.Equal(t, map[string]any{"data_recebimento": nil}, a.Colunas())
	}
}

func TestParseAlteracaoStatusCanonico(t *testing.T) {
	a, erros := ParseAlteracao(corpo(t, `{"status":"recebido","data_recebimento":"2024-01-05"}`))
	require.True(t, erros.Vazio())
	assert.Equal(t, models.StatusRecebido, a.Status)
	assert.Equal(t, models.NovaData(2024, 1, 5), *a.DataRecebimento)

	var c ControleDeRecebimento
	a.Aplicar(&c)
	assert.True(t, c.Recebida())
	assert.Nil(t, c.NumeroExtrato)
}

func TestParseAlteracaoInvalida(t *testing.T) {
	_, erros := ParseAlteracao(corpo(t, `{"status":"Pago","data_recebimento":"05/01/2024","numero_extrato":12}`))
	assert.Len(t, erros, 3)
	assert.Equal(t, []string{`"Pago" não é um escolha válido.`}, erros["status"])
	assert.Equal(t, []string{msgData}, erros["data_recebimento"])
}

func TestAlteracaoVazia(t *testing.T) {
	a, erros := ParseAlteracao(corpo(t, `{}`))
	assert.True(t, erros.Vazio())
	assert.True(t, a.Vazia())
	assert.Empty(t, a.Colunas())
}

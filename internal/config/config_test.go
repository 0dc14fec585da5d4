package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarregarServidor(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("CORS_ORIGINS", "http://a.com, http://b.com,")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "5")

	cfg, err := CarregarServidor("arquivo-que-nao-existe.env")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Endereco)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL())
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.Origens())
	assert.Equal(t, "host=db port=5432 user=postgres dbname=sistema_comissoes sslmode=disable password=pw", cfg.Banco.DSN())
	assert.Equal(t, "info", cfg.Log.Nivel)
}

func TestCarregarServidorSemSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := CarregarServidor("arquivo-que-nao-existe.env")
	assert.Error(t, err)
}

func TestCarregarCliente(t *testing.T) {
	t.Setenv("DEBOUNCE_EDIT_MS", "250")
	t.Setenv("SESSION_FILE", "/tmp/sessao.json")

	cfg, err := CarregarCliente("arquivo-que-nao-existe.env")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceEdicao())
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceBusca())
	assert.Equal(t, "/tmp/sessao.json", cfg.ArquivoSessao)
}

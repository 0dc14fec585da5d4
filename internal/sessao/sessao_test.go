package sessao

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCicloDeVida(t *testing.T) {
	s, err := Nova(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Token())

	require.NoError(t, s.Definir(Dados{Access: "a", Refresh: "r", Usuario: "ana"}))
	assert.Equal(t, "a", s.Token())

	s.Expirar()
	assert.True(t, s.Expirada())
	assert.Empty(t, s.Token())
	assert.Equal(t, "r", s.Refresh(), "refresh sobrevive à expiração")

	require.NoError(t, s.AtualizarAccess("b"))
	assert.Equal(t, "b", s.Token())

	require.NoError(t, s.Limpar())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Refresh())
}

func TestArquivoStore(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "cfg", "sessao.json")
	store := ArquivoStore{Caminho: caminho}

	s, err := Nova(store)
	require.NoError(t, err)
	require.NoError(t, s.Definir(Dados{Access: "a", Refresh: "r", Usuario: "ana"}))

	info, err := os.Stat(caminho)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	outra, err := Nova(store)
	require.NoError(t, err)
	assert.Equal(t, "a", outra.Token())
	assert.Equal(t, "ana", outra.Usuario())

	require.NoError(t, outra.Limpar())
	_, err = os.Stat(caminho)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NoError(t, store.Apagar(), "apagar duas vezes não é erro")
}

func TestArquivoCorrompido(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "sessao.json")
	require.NoError(t, os.WriteFile(caminho, []byte("{"), 0o600))
	_, err := Nova(ArquivoStore{Caminho: caminho})
	assert.Error(t, err)
}

type verificadorFake struct {
	err     error
	chamado int
}

func (v *verificadorFake) Verificar(context.Context, string) error {
	v.chamado++
	return v.err
}

func TestGuardSemTokenNaoChamaServidor(t *testing.T) {
	s, _ := Nova(nil)
	v := &verificadorFake{}
	var estados []Estado
	g := &Guard{Sessao: s, Verificador: v, Observar: func(e Estado) { estados = append(estados, e) }}

	assert.Equal(t, NaoAutenticado, g.Verificar(context.Background()))
	assert.Zero(t, v.chamado)
	assert.Equal(t, []Estado{Verificando, NaoAutenticado}, estados)
	assert.ErrorIs(t, g.Exigir(context.Background()), ErrLoginNecessario)
}

func TestGuardComToken(t *testing.T) {
	s, _ := Nova(nil)
	require.NoError(t, s.Definir(Dados{Access: "a"}))
	v := &verificadorFake{}
	var estados []Estado
	g := &Guard{Sessao: s, Verificador: v, Observar: func(e Estado) { estados = append(estados, e) }}

	assert.Equal(t, Autenticado, g.Verificar(context.Background()))
	assert.Equal(t, []Estado{Verificando, Autenticado}, estados)
	assert.NoError(t, g.Exigir(context.Background()))

	v.err = errors.New("token_not_valid")
	assert.Equal(t, NaoAutenticado, g.Verificar(context.Background()))
	assert.Equal(t, 3, v.chamado)
}

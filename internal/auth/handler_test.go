package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/logger"
	"github.com/corretora/sistema-comissoes/internal/utils"
)

type repoMemoria struct {
	usuarios map[string]*Usuario
}

func (r *repoMemoria) FindByUsername(_ *gorm.DB, username string) (*Usuario, error) {
	if u, ok := r.usuarios[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *repoMemoria) Save(_ *gorm.DB, u *Usuario) error {
	if _, ok := r.usuarios[u.Username]; ok {
		return ErrUsuarioExiste
	}
	u.ID = uint(len(r.usuarios) + 1)
	r.usuarios[u.Username] = u
	return nil
}

func novoHandler(t *testing.T) *Handler {
	t.Helper()
	hash, err := utils.HashSenha("s3nha")
	require.NoError(t, err)
	return &Handler{
		Repository: &repoMemoria{usuarios: map[string]*Usuario{
			"ana":     {ID: 1, Username: "ana", Password: hash, Ativo: true},
			"inativo": {ID: 2, Username: "inativo", Password: hash},
		}},
		Emissor: NewEmissor("segredo", time.Minute, time.Hour),
		Log:     logger.Silencioso(),
	}
}

func post(h http.HandlerFunc, corpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(corpo)))
	return rec
}

func TestLogin(t *testing.T) {
	h := novoHandler(t)

	rec := post(h.Login, `{"username":"ana","password":"s3nha"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var par ParTokens
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&par))
	assert.NotEmpty(t, par.Access)
	assert.NotEmpty(t, par.Refresh)

	cases := map[string]string{
		"senha errada":    `{"username":"ana","password":"x"}`,
		"desconhecido":    `{"username":"bob","password":"s3nha"}`,
		"usuário inativo": `{"username":"inativo","password":"s3nha"}`,
	}
	for nome, corpo := range cases {
		t.Run(nome, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, post(h.Login, corpo).Code)
		})
	}
}

func TestLoginCamposObrigatorios(t *testing.T) {
	rec := post(novoHandler(t).Login, `{"username":"ana"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"password":["Este campo é obrigatório."]}`, rec.Body.String())
}

func TestVerificarERenovar(t *testing.T) {
	h := novoHandler(t)
	par, err := h.Emissor.GerarPar(&Usuario{ID: 1})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, post(h.Verificar, `{"token":"`+par.Access+`"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(h.Verificar, `{"token":"lixo"}`).Code)

	rec := post(h.Renovar, `{"refresh":"`+par.Refresh+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access"`)
	assert.Equal(t, http.StatusUnauthorized, post(h.Renovar, `{"refresh":"`+par.Access+`"}`).Code)
}

func TestRegistrar(t *testing.T) {
	h := novoHandler(t)

	rec := post(h.Registrar, `{"username":"carla","email":"carla@ex.com","password":"segura1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "segura1")

	rec = post(h.Registrar, `{"username":"ana","password":"segura1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username")

	rec = post(h.Registrar, `{"username":"dani","email":"nao-e-email","password":"segura1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestMiddleware(t *testing.T) {
	e := NewEmissor("segredo", time.Minute, time.Hour)
	par, err := e.GerarPar(&Usuario{ID: 42})
	require.NoError(t, err)

	var visto uint
	h := e.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto, _ = UsuarioID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/venda/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Authorization", "Bearer "+par.Refresh)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Authorization", "Bearer "+par.Access)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), visto)
}

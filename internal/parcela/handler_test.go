package parcela

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/logger"
)

type repoMemoria struct {
	dados  map[uint]Parcela
	planos map[uint]bool
	prox   uint
}

func (r *repoMemoria) Listar(_ *gorm.DB, planoID uint) ([]Parcela, error) {
	out := []Parcela{}
	for _, p := range r.dados {
		if planoID == 0 || p.PlanoID == planoID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroParcela < out[j].NumeroParcela })
	return out, nil
}

func (r *repoMemoria) BuscarPorID(_ *gorm.DB, id uint) (*Parcela, error) {
	p, ok := r.dados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *repoMemoria) PlanoExiste(_ *gorm.DB, id uint) (bool, error) { return r.planos[id], nil }

func (r *repoMemoria) Salvar(_ *gorm.DB, p *Parcela) error {
	if p.ID == 0 {
		r.prox++
		p.ID = r.prox
	}
	r.dados[p.ID] = *p
	return nil
}

func (r *repoMemoria) Deletar(_ *gorm.DB, id uint) error {
	if _, ok := r.dados[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.dados, id)
	return nil
}

func novoRouter() (*mux.Router, *repoMemoria) {
	repo := &repoMemoria{dados: map[uint]Parcela{}, planos: map[uint]bool{1: true, 2: true}}
	h := &Handler{Repository: repo, Log: logger.Silencioso()}
	r := mux.NewRouter()
	r.HandleFunc("/api/parcela/", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/api/parcela/", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/api/parcela/{id:[0-9]+}/", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/api/parcela/{id:[0-9]+}/", h.Deletar).Methods(http.MethodDelete)
	return r, repo
}

func chamar(r http.Handler, metodo, url, corpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(metodo, url, strings.NewReader(corpo)))
	return rec
}

func TestCriarEFiltrarPorPlano(t *testing.T) {
	r, repo := novoRouter()

	require.Equal(t, http.StatusCreated, chamar(r, http.MethodPost, "/api/parcela/", `{"plano":1,"numero_parcela":1,"porcentagem_parcela":"100"}`).Code)
	require.Equal(t, http.StatusCreated, chamar(r, http.MethodPost, "/api/parcela/", `{"plano":1,"numero_parcela":2,"porcentagem_parcela":80}`).Code)
	require.Equal(t, http.StatusCreated, chamar(r, http.MethodPost, "/api/parcela/", `{"plano":2,"numero_parcela":1,"porcentagem_parcela":"50"}`).Code)
	assert.True(t, decimal.NewFromInt(80).Equal(repo.dados[2].PorcentagemParcela))

	rec := chamar(r, http.MethodGet, "/api/parcela/?plano=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `"plano":1`))
	assert.NotContains(t, rec.Body.String(), `"plano":2`)

	assert.Equal(t, http.StatusBadRequest, chamar(r, http.MethodGet, "/api/parcela/?plano=abc", "").Code)
}

func TestCriarParcelaPlanoInexistente(t *testing.T) {
	r, _ := novoRouter()
	rec := chamar(r, http.MethodPost, "/api/parcela/", `{"plano":9,"numero_parcela":1,"porcentagem_parcela":"100"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"plano"`)
}

func TestAtualizarEDeletarParcela(t *testing.T) {
	r, repo := novoRouter()
	require.Equal(t, http.StatusCreated, chamar(r, http.MethodPost, "/api/parcela/", `{"plano":1,"numero_parcela":1,"porcentagem_parcela":"100"}`).Code)

	rec := chamar(r, http.MethodPut, "/api/parcela/1/", `{"plano":2,"numero_parcela":1,"porcentagem_parcela":"90.5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(2), repo.dados[1].PlanoID)

	assert.Equal(t, http.StatusNoContent, chamar(r, http.MethodDelete, "/api/parcela/1/", "").Code)
	assert.Equal(t, http.StatusNotFound, chamar(r, http.MethodPut, "/api/parcela/1/", `{}`).Code)
}

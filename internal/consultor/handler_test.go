package consultor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/logger"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

type repoMemoria struct {
	dados        map[uint]Consultor
	prox         uint
	vendas       map[uint]int64
	recebimentos map[uint][]recebimento.ControleDeRecebimento
}

func (r *repoMemoria) ListarTodos(*gorm.DB) ([]Consultor, error) {
	out := []Consultor{}
	for i := uint(1); i <= r.prox; i++ {
		if c, ok := r.dados[i]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *repoMemoria) BuscarPorID(_ *gorm.DB, id uint) (*Consultor, error) {
	c, ok := r.dados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *repoMemoria) Salvar(_ *gorm.DB, c *Consultor) error {
	if c.ID == 0 {
		r.prox++
		c.ID = r.prox
	}
	r.dados[c.ID] = *c
	return nil
}

func (r *repoMemoria) Deletar(_ *gorm.DB, id uint) error {
	if _, ok := r.dados[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.dados, id)
	return nil
}

func (r *repoMemoria) ContarVendas(_ *gorm.DB, id uint) (int64, error) { return r.vendas[id], nil }

func (r *repoMemoria) ListarRecebimentos(_ *gorm.DB, id uint) ([]recebimento.ControleDeRecebimento, error) {
	return r.recebimentos[id], nil
}

func novoRouter() (*mux.Router, *repoMemoria) {
	repo := &repoMemoria{
		dados:        map[uint]Consultor{},
		vendas:       map[uint]int64{},
		recebimentos: map[uint][]recebimento.ControleDeRecebimento{},
	}
	h := &Handler{
		Repository: repo,
		Log:        logger.Silencioso(),
		Agora:      func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	r := mux.NewRouter()
	r.HandleFunc("/api/consultor/", h.ListarConsultores).Methods(http.MethodGet)
	r.HandleFunc("/api/consultor/", h.CriarConsultor).Methods(http.MethodPost)
	r.HandleFunc("/api/consultor/{id:[0-9]+}/", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/api/consultor/{id:[0-9]+}/", h.AtualizarConsultor).Methods(http.MethodPut)
	r.HandleFunc("/api/consultor/{id:[0-9]+}/", h.DeletarConsultor).Methods(http.MethodDelete)
	r.HandleFunc("/api/consultor/{id:[0-9]+}/resumo/", h.ObterResumoConsultor).Methods(http.MethodGet)
	return r, repo
}

func chamar(r http.Handler, metodo, url, corpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(metodo, url, strings.NewReader(corpo)))
	return rec
}

func TestCrudConsultor(t *testing.T) {
	r, repo := novoRouter()

	rec := chamar(r, http.MethodPost, "/api/consultor/", `{"nome":"Carla","telefone":"11 9999-0000"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"nome":"Carla","telefone":"11 9999-0000","email":null}`, rec.Body.String())

	rec = chamar(r, http.MethodPut, "/api/consultor/1/", `{"nome":"Carla S.","email":"carla@ex.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "carla@ex.com", *repo.dados[1].Email)
	assert.Nil(t, repo.dados[1].Telefone)

	assert.Equal(t, http.StatusBadRequest, chamar(r, http.MethodPost, "/api/consultor/", `{"nome":""}`).Code)
	assert.Equal(t, http.StatusNoContent, chamar(r, http.MethodDelete, "/api/consultor/1/", "").Code)
	assert.Equal(t, http.StatusNotFound, chamar(r, http.MethodGet, "/api/consultor/1/", "").Code)
}

func TestResumoConsultor(t *testing.T) {
	r, repo := novoRouter()
	repo.dados[4] = Consultor{ID: 4, Nome: "Davi"}
	repo.prox = 4
	repo.vendas[4] = 1
	repo.recebimentos[4] = []recebimento.ControleDeRecebimento{
		{ValorParcela: decimal.RequireFromString("50"), Status: "Não Recebido", DataPrevistaRecebimento: models.NovaData(2024, 5, 1)},
	}

	rec := chamar(r, http.MethodGet, "/api/consultor/4/resumo/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_vendas":1`)
	assert.Contains(t, rec.Body.String(), `"parcelas_atrasadas":1`)
	assert.Contains(t, rec.Body.String(), `"comissao_a_receber":"50"`)

	assert.Equal(t, http.StatusNotFound, chamar(r, http.MethodGet, "/api/consultor/99/resumo/", "").Code)
}

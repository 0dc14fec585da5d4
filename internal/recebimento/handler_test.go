package recebimento

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/logger"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/notificacao"
	"github.com/corretora/sistema-comissoes/internal/parcela"
)

type repoMemoria struct {
	dados map[uint]ControleDeRecebimento
}

func (r *repoMemoria) Listar(_ *gorm.DB, f Filtro) ([]ControleDeRecebimento, error) {
	out := []ControleDeRecebimento{}
	for id := uint(1); id <= uint(len(r.dados))+5; id++ {
		c, ok := r.dados[id]
		if !ok || (f.VendaID != 0 && c.VendaID != f.VendaID) || (f.Status != "" && c.Status != f.Status) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *repoMemoria) BuscarPorID(_ *gorm.DB, id uint) (*ControleDeRecebimento, error) {
	c, ok := r.dados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *repoMemoria) ReferenciasExistem(_ *gorm.DB, vendaID, parcelaID uint) (bool, bool, error) {
	return vendaID == 1, parcelaID == 1, nil
}

func (r *repoMemoria) Salvar(_ *gorm.DB, c *ControleDeRecebimento) error {
	r.dados[c.ID] = *c
	return nil
}

func (r *repoMemoria) Atualizar(_ *gorm.DB, id uint, colunas map[string]any) error {
	c, ok := r.dados[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range colunas {
		switch k {
		case "status":
			c.Status = v.(string)
		case "numero_extrato":
			if v == nil {
				c.NumeroExtrato = nil
			} else {
				s := v.(string)
				c.NumeroExtrato = &s
			}
		case "data_recebimento":
			if v == nil {
				c.DataRecebimento = nil
			} else {
				d := v.(models.Data)
				c.DataRecebimento = &d
			}
		}
	}
	r.dados[id] = c
	return nil
}

func (r *repoMemoria) Deletar(_ *gorm.DB, id uint) error {
	if _, ok := r.dados[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.dados, id)
	return nil
}

type notificadorMemoria struct {
	mu      sync.Mutex
	eventos []notificacao.Evento
}

func (n *notificadorMemoria) Notificar(_ context.Context, ev notificacao.Evento) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventos = append(n.eventos, ev)
	return nil
}

type observadorMemoria struct{ transicoes []string }

func (o *observadorMemoria) ObservarRecebimento(de, para string) {
	o.transicoes = append(o.transicoes, de+"->"+para)
}

type ambiente struct {
	router *mux.Router
	repo   *repoMemoria
	notif  *notificadorMemoria
	obs    *observadorMemoria
}

func novoAmbiente() ambiente {
	repo := &repoMemoria{dados: map[uint]ControleDeRecebimento{
		1: {
			ID: 1, VendaID: 1, ParcelaID: 1,
			Parcela:                 parcela.Parcela{ID: 1, PlanoID: 1, NumeroParcela: 1},
			ValorParcela:            decimal.RequireFromString("100.00"),
			DataPrevistaRecebimento: models.NovaData(2024, 1, 1),
			Status:                  models.StatusNaoRecebido,
		},
		2: {
			ID: 2, VendaID: 2, ParcelaID: 2,
			Parcela:                 parcela.Parcela{ID: 2, PlanoID: 1, NumeroParcela: 2},
			ValorParcela:            decimal.RequireFromString("80.00"),
			DataPrevistaRecebimento: models.NovaData(2024, 1, 31),
			Status:                  models.StatusRecebido,
		},
	}}
	a := ambiente{repo: repo, notif: &notificadorMemoria{}, obs: &observadorMemoria{}}
	h := &Handler{Repository: repo, Notificador: a.notif, Observador: a.obs, Log: logger.Silencioso()}
	r := mux.NewRouter()
	r.HandleFunc("/api/controlederecebimento/", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/api/controlederecebimento/{id:[0-9]+}/", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/api/controlederecebimento/{id:[0-9]+}/", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/api/controlederecebimento/{id:[0-9]+}/", h.AtualizarParcial).Methods(http.MethodPatch)
	r.HandleFunc("/api/controlederecebimento/{id:[0-9]+}/", h.Deletar).Methods(http.MethodDelete)
	a.router = r
	return a
}

func chamar(r http.Handler, metodo, url, corpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(metodo, url, strings.NewReader(corpo)))
	return rec
}

func TestPatchNumeroExtrato(t *testing.T) {
	a := novoAmbiente()

	rec := chamar(a.router, http.MethodPatch, "/api/controlederecebimento/1/", `{"numero_extrato":"EXT-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"numero_extrato":"EXT-1"`)
	assert.Contains(t, rec.Body.String(), `"parcela":{"id":1,"plano":1,"numero_parcela":1`)
	assert.Equal(t, models.StatusNaoRecebido, a.repo.dados[1].Status)
	assert.Empty(t, a.notif.eventos)
	assert.Empty(t, a.obs.transicoes)
}

func TestPatchMarcarRecebidoNotifica(t *testing.T) {
	a := novoAmbiente()

	rec := chamar(a.router, http.MethodPatch, "/api/controlederecebimento/1/", `{"status":"Recebido","data_recebimento":"2024-01-05"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data_recebimento":"2024-01-05"`)
	assert.Contains(t, rec.Body.String(), `"status":"Recebido"`)

	require.Len(t, a.notif.eventos, 1)
	ev := a.notif.eventos[0]
	assert.Equal(t, notificacao.TipoParcelaRecebida, ev.Tipo)
	assert.Equal(t, uint(1), ev.RecebimentoID)
	assert.Equal(t, 1, ev.NumeroParcela)
	assert.Equal(t, "2024-01-05", ev.DataRecebimento)
	assert.Equal(t, []string{"Não Recebido->Recebido"}, a.obs.transicoes)

	// repetir não gera novo evento
	chamar(a.router, http.MethodPatch, "/api/controlederecebimento/1/", `{"status":"recebido"}`)
	assert.Len(t, a.notif.eventos, 1)
}

func TestPatchInvalido(t *testing.T) {
	a := novoAmbiente()

	rec := chamar(a.router, http.MethodPatch, "/api/controlederecebimento/1/", `{"status":"Pago"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status"`)

	assert.Equal(t, http.StatusNotFound, chamar(a.router, http.MethodPatch, "/api/controlederecebimento/9/", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, chamar(a.router, http.MethodPatch, "/api/controlederecebimento/1/", `[`).Code)
}

func TestPutCompleto(t *testing.T) {
	a := novoAmbiente()

	corpo := `{"venda":1,"parcela":1,"valor_parcela":"120.00","data_prevista_recebimento":"2024-01-01","data_recebimento":"2024-01-02","status":"Recebido","numero_extrato":"X"}`
	rec := chamar(a.router, http.MethodPut, "/api/controlederecebimento/1/", corpo)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decimal.NewFromInt(120).Equal(a.repo.dados[1].ValorParcela))
	assert.Len(t, a.notif.eventos, 1)

	rec = chamar(a.router, http.MethodPut, "/api/controlederecebimento/1/", `{"venda":7,"parcela":1,"valor_parcela":"1","data_prevista_recebimento":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"venda"`)
}

func TestListarFiltros(t *testing.T) {
	a := novoAmbiente()

	rec := chamar(a.router, http.MethodGet, "/api/controlederecebimento/?status=recebido", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)
	assert.NotContains(t, rec.Body.String(), `"id":1,`)

	rec = chamar(a.router, http.MethodGet, "/api/controlederecebimento/?venda=1", "")
	assert.Contains(t, rec.Body.String(), `"id":1,`)

	assert.Equal(t, http.StatusBadRequest, chamar(a.router, http.MethodGet, "/api/controlederecebimento/?status=x", "").Code)
}

func TestDeletar(t *testing.T) {
	a := novoAmbiente()
	assert.Equal(t, http.StatusNoContent, chamar(a.router, http.MethodDelete, "/api/controlederecebimento/2/", "").Code)
	assert.Equal(t, http.StatusNotFound, chamar(a.router, http.MethodGet, "/api/controlederecebimento/2/", "").Code)
}

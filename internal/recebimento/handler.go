package recebimento

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/notificacao"
	"github.com/corretora/sistema-comissoes/internal/utils"
)

// ObservadorStatus recebe as transições de status (métricas).
type ObservadorStatus interface {
	ObservarRecebimento(de, para string)
}

type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Notificador notificacao.Notificador
	Observador  ObservadorStatus
	Log         *logrus.Logger
}

func NewHandler(db *gorm.DB, n notificacao.Notificador, o ObservadorStatus, log *logrus.Logger) *Handler {
	if n == nil {
		n = notificacao.Nulo{}
	}
	return &Handler{DB: db, Repository: NewRepository(), Notificador: n, Observador: o, Log: log}
}

// GET /api/controlederecebimento/?venda=<id>&status=<status>
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var f Filtro
	erros := utils.ErrosCampo{}
	if v := r.URL.Query().Get("venda"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			erros.Adicionar("venda", "Informe um número válido.")
		}
		f.VendaID = uint(id)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		st, ok := models.NormalizarStatus(v)
		if !ok {
			erros.Adicionar("status", fmt.Sprintf("\"%s\" não é um escolha válido.", v))
		}
		f.Status = st
	}
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return
	}

	lista, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar recebimentos")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao buscar recebimentos.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, lista)
}

// GET /api/controlederecebimento/{id}/
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

// PUT /api/controlederecebimento/{id}/
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	atual, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	anterior := atual.Status

	var req RecebimentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "JSON mal formado.")
		return
	}
	if erros := req.paraModelo(atual); !erros.Vazio() {
		utils.WriteErros(w, erros)
		return
	}
	vendaOK, parcelaOK, err := h.Repository.ReferenciasExistem(h.DB, atual.VendaID, atual.ParcelaID)
	if err != nil {
		h.responderErro(w, err, "atualizar")
		return
	}
	erros := utils.ErrosCampo{}
	if !vendaOK {
		erros.Adicionar("venda", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", atual.VendaID))
	}
	if !parcelaOK {
		erros.Adicionar("parcela", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", atual.ParcelaID))
	}
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return
	}

	if err := h.Repository.Salvar(h.DB, atual); err != nil {
		h.responderErro(w, err, "atualizar")
		return
	}
	h.finalizar(w, r, id, anterior)
}

// PATCH /api/controlederecebimento/{id}/
// Aceita qualquer subconjunto de data_recebimento, numero_extrato e status.
func (h *Handler) AtualizarParcial(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	var corpo map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "JSON mal formado.")
		return
	}
	alt, erros := ParseAlteracao(corpo)
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return
	}

	atual, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	anterior := atual.Status

	if err := h.Repository.Atualizar(h.DB, id, alt.Colunas()); err != nil {
		h.responderErro(w, err, "atualizar")
		return
	}
	h.finalizar(w, r, id, anterior)
}

// finalizar relê o registro, registra a transição e responde com a representação do servidor.
func (h *Handler) finalizar(w http.ResponseWriter, r *http.Request, id uint, statusAnterior string) {
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	if c.Status != statusAnterior {
		if h.Observador != nil {
			h.Observador.ObservarRecebimento(statusAnterior, c.Status)
		}
		if !models.Recebido(statusAnterior) && c.Recebida() {
			h.notificarRecebida(r.Context(), c)
		}
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) notificarRecebida(ctx context.Context, c *ControleDeRecebimento) {
	ev := notificacao.NovoEvento(notificacao.TipoParcelaRecebida)
	ev.RecebimentoID = c.ID
	ev.VendaID = c.VendaID
	ev.NumeroParcela = c.Parcela.NumeroParcela
	ev.ValorParcela = c.ValorParcela
	if c.DataRecebimento != nil {
		ev.DataRecebimento = c.DataRecebimento.String()
	}
	if c.NumeroExtrato != nil {
		ev.NumeroExtrato = *c.NumeroExtrato
	}
	if err := h.Notificador.Notificar(ctx, ev); err != nil {
		h.Log.WithError(err).WithField("recebimento", c.ID).Warn("falha ao notificar recebimento")
	}
}

// DELETE /api/controlederecebimento/{id}/
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		h.responderErro(w, err, "excluir")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) responderErro(w http.ResponseWriter, err error, acao string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteDetalhe(w, http.StatusNotFound, "Recebimento não encontrado.")
		return
	}
	h.Log.WithError(err).WithField("acao", acao).Error("erro no controle de recebimento")
	utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao "+acao+" recebimento.")
}

package parcela

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/utils"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logrus.Logger
}

func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: log}
}

// GET /api/parcela/?plano=<id>
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var planoID uint
	if v := r.URL.Query().Get("plano"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			utils.WriteErros(w, utils.ErrosCampo{"plano": {"Informe um número válido."}})
			return
		}
		planoID = uint(id)
	}
	parcelas, err := h.Repository.Listar(h.DB, planoID)
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar parcelas")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao buscar parcelas.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, parcelas)
}

// GET /api/parcela/{id}/
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID da parcela inválido.")
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

// POST /api/parcela/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ParcelaRequest
	if !h.decodificar(w, r, &req) {
		return
	}
	var p Parcela
	req.aplicar(&p)
	if err := h.Repository.Salvar(h.DB, &p); err != nil {
		h.responderErro(w, err, "criar")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

// PUT /api/parcela/{id}/
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID da parcela inválido.")
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	var req ParcelaRequest
	if !h.decodificar(w, r, &req) {
		return
	}
	req.aplicar(p)
	if err := h.Repository.Salvar(h.DB, p); err != nil {
		h.responderErro(w, err, "atualizar")
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

// DELETE /api/parcela/{id}/
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID da parcela inválido.")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		h.responderErro(w, err, "excluir")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodificar(w http.ResponseWriter, r *http.Request, req *ParcelaRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "JSON mal formado.")
		return false
	}
	erros := utils.Validar(req)
	if req.Plano != 0 {
		ok, err := h.Repository.PlanoExiste(h.DB, req.Plano)
		if err != nil {
			h.Log.WithError(err).Error("erro ao conferir plano")
			utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao validar plano.")
			return false
		}
		if !ok {
			erros.Adicionar("plano", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", req.Plano))
		}
	}
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return false
	}
	return true
}

func (h *Handler) responderErro(w http.ResponseWriter, err error, acao string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteDetalhe(w, http.StatusNotFound, "Parcela não encontrada.")
		return
	}
	h.Log.WithError(err).WithField("acao", acao).Error("erro no cadastro de parcelas")
	utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao "+acao+" parcela.")
}

package plano

import (
	"encoding/json"
	"errors"
	"net/http"

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

// GET /api/plano/
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	planos, err := h.Repository.Listar(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar planos")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao listar planos.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, planos)
}

// GET /api/plano/{id}/
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

// POST /api/plano/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req PlanoRequest
	if !h.decodificar(w, r, &req) {
		return
	}
	var p Plano
	req.aplicar(&p)
	if err := h.Repository.Salvar(h.DB, &p); err != nil {
		h.responderErro(w, err, "salvar")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

// PUT /api/plano/{id}/
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	var req PlanoRequest
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

// DELETE /api/plano/{id}/
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

func (h *Handler) decodificar(w http.ResponseWriter, r *http.Request, req *PlanoRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "JSON mal formado.")
		return false
	}
	if erros := utils.Validar(req); !erros.Vazio() {
		utils.WriteErros(w, erros)
		return false
	}
	return true
}

func (h *Handler) responderErro(w http.ResponseWriter, err error, acao string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.WriteDetalhe(w, http.StatusNotFound, "Plano não encontrado.")
	case errors.Is(err, ErrPlanoDuplicado):
		utils.WriteErros(w, utils.ErrosCampo{
			"non_field_errors": {"Os campos operadora, tipo devem criar um set único."},
		})
	default:
		h.Log.WithError(err).WithField("acao", acao).Error("erro no cadastro de planos")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao "+acao+" plano.")
	}
}

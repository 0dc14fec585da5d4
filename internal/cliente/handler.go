package cliente

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

// GET /api/clientes/
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.Repository.Listar(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar clientes")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao listar clientes.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, clientes)
}

// GET /api/clientes/{id}/
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

// POST /api/clientes/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ClienteRequest
	if !h.decodificar(w, r, &req) {
		return
	}
	var c Cliente
	req.aplicar(&c)
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		h.responderErro(w, err, "salvar")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, c)
}

// PUT /api/clientes/{id}/
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
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
	var req ClienteRequest
	if !h.decodificar(w, r, &req) {
		return
	}
	req.aplicar(c)
	if err := h.Repository.Salvar(h.DB, c); err != nil {
		h.responderErro(w, err, "atualizar")
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

// DELETE /api/clientes/{id}/
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

func (h *Handler) decodificar(w http.ResponseWriter, r *http.Request, req *ClienteRequest) bool {
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
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteDetalhe(w, http.StatusNotFound, "Cliente não encontrado.")
		return
	}
	h.Log.WithError(err).WithField("acao", acao).Error("erro no cadastro de clientes")
	utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao "+acao+" cliente.")
}

package consultor

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/utils"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logrus.Logger
	Agora      func() time.Time
}

func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: log, Agora: time.Now}
}

// GET /api/consultor/
func (h *Handler) ListarConsultores(w http.ResponseWriter, r *http.Request) {
	consultores, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar consultores")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao listar consultores.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, consultores)
}

// GET /api/consultor/{id}/
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

// POST /api/consultor/
func (h *Handler) CriarConsultor(w http.ResponseWriter, r *http.Request) {
	var req ConsultorRequest
	if !h.decodificar(w, r, &req) {
		return
	}
	var c Consultor
	req.aplicar(&c)
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		h.responderErro(w, err, "salvar")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, c)
}

// PUT /api/consultor/{id}/
func (h *Handler) AtualizarConsultor(w http.ResponseWriter, r *http.Request) {
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
	var req ConsultorRequest
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

// DELETE /api/consultor/{id}/
func (h *Handler) DeletarConsultor(w http.ResponseWriter, r *http.Request) {
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

// GET /api/consultor/{id}/resumo/
func (h *Handler) ObterResumoConsultor(w http.ResponseWriter, r *http.Request) {
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
	total, err := h.Repository.ContarVendas(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "resumir")
		return
	}
	recebimentos, err := h.Repository.ListarRecebimentos(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "resumir")
		return
	}
	utils.WriteJSON(w, http.StatusOK, MontarResumoConsultorDTO(*c, int(total), recebimentos, h.Agora()))
}

func (h *Handler) decodificar(w http.ResponseWriter, r *http.Request, req *ConsultorRequest) bool {
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
		utils.WriteDetalhe(w, http.StatusNotFound, "Consultor não encontrado.")
		return
	}
	h.Log.WithError(err).WithField("acao", acao).Error("erro no cadastro de consultores")
	utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao "+acao+" consultor.")
}

package auth

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
	Emissor    *Emissor
	Log        *logrus.Logger
}

func NewHandler(db *gorm.DB, emissor *Emissor, log *logrus.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Emissor:    emissor,
		Log:        log,
	}
}

func decodificar(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "JSON inválido.")
		return false
	}
	if erros := utils.Validar(v); !erros.Vazio() {
		utils.WriteErros(w, erros)
		return false
	}
	return true
}

// POST /api/token/
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodificar(w, r, &req) {
		return
	}

	u, err := h.Repository.FindByUsername(h.DB, req.Username)
	if err != nil || !u.Ativo || !utils.CheckSenha(u.Password, req.Password) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Log.WithError(err).Error("falha ao buscar usuário")
		}
		utils.WriteDetalhe(w, http.StatusUnauthorized, "Nenhuma conta ativa encontrada com as credenciais fornecidas.")
		return
	}

	par, err := h.Emissor.GerarPar(u)
	if err != nil {
		h.Log.WithError(err).Error("falha ao gerar tokens")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao gerar tokens.")
		return
	}
	h.Log.WithField("usuario", u.Username).Info("login realizado")
	utils.WriteJSON(w, http.StatusOK, par)
}

// POST /api/token/verify/
func (h *Handler) Verificar(w http.ResponseWriter, r *http.Request) {
	var req VerificarRequest
	if !decodificar(w, r, &req) {
		return
	}
	if _, err := h.Emissor.Validar(req.Token, ""); err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token inválido ou expirado.",
			"code":   "token_not_valid",
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{})
}

// POST /api/token/refresh/
func (h *Handler) Renovar(w http.ResponseWriter, r *http.Request) {
	var req RenovarRequest
	if !decodificar(w, r, &req) {
		return
	}
	access, err := h.Emissor.Renovar(req.Refresh)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token inválido ou expirado.",
			"code":   "token_not_valid",
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"access": access})
}

// POST /register/
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req RegistroRequest
	if !decodificar(w, r, &req) {
		return
	}

	hash, err := utils.HashSenha(req.Password)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao processar senha.")
		return
	}
	u := Usuario{Username: req.Username, Email: req.Email, Password: hash, Ativo: true}
	if err := h.Repository.Save(h.DB, &u); err != nil {
		if errors.Is(err, ErrUsuarioExiste) {
			utils.WriteErros(w, utils.ErrosCampo{"username": {"Um usuário com este nome de usuário já existe."}})
			return
		}
		h.Log.WithError(err).Error("falha ao registrar usuário")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao registrar usuário.")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, u)
}

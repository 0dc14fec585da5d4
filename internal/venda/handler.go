package venda

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/utils"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logrus.Logger
	Agora      func() time.Time
}

func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: log, Agora: time.Now}
}

// GET /api/venda/
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	vendas, err := h.Repository.Listar(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar vendas")
		utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao buscar vendas.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, vendas)
}

// GET /api/venda/{id}/
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	v, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

// POST /api/venda/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var v Venda
	if !h.preparar(w, r, &v) {
		return
	}
	h.salvar(w, &v, http.StatusCreated)
}

// PUT /api/venda/{id}/
// Regrava a venda e gera de novo todas as parcelas de recebimento.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "ID inválido.")
		return
	}
	v, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	if !h.preparar(w, r, v) {
		return
	}
	h.salvar(w, v, http.StatusOK)
}

// preparar decodifica, valida e confere as referências; responde 400 quando falha.
func (h *Handler) preparar(w http.ResponseWriter, r *http.Request, v *Venda) bool {
	var req VendaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteDetalhe(w, http.StatusBadRequest, "JSON mal formado.")
		return false
	}
	erros, taxaInformada := req.paraModelo(v, h.Agora())
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return false
	}

	clienteOK, consultorOK, err := h.Repository.ReferenciasExistem(h.DB, v.ClienteID, v.ConsultorID)
	if err != nil {
		h.responderErro(w, err, "validar")
		return false
	}
	if !clienteOK {
		erros.Adicionar("cliente_id", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", v.ClienteID))
	}
	if !consultorOK {
		erros.Adicionar("consultor_id", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", v.ConsultorID))
	}
	p, err := h.Repository.BuscarPlano(h.DB, v.PlanoID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		erros.Adicionar("plano_id", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", v.PlanoID))
	case err != nil:
		h.responderErro(w, err, "validar")
		return false
	case !taxaInformada:
		v.TaxaPlano = p.TaxaPara(v.ValorPlano)
	}

	emUso, err := h.Repository.PropostaEmUso(h.DB, v.NumeroProposta, v.ID)
	if err != nil {
		h.responderErro(w, err, "validar")
		return false
	}
	if emUso {
		erros.Adicionar("numero_proposta", "venda com este numero proposta já existe.")
	}
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return false
	}
	return true
}

func (h *Handler) salvar(w http.ResponseWriter, v *Venda, status int) {
	if err := h.Repository.Salvar(h.DB, v); err != nil {
		h.responderErro(w, err, "salvar")
		return
	}
	salva, err := h.Repository.BuscarPorID(h.DB, v.ID)
	if err != nil {
		h.responderErro(w, err, "buscar")
		return
	}
	h.Log.WithFields(logrus.Fields{
		"venda":    salva.ID,
		"proposta": salva.NumeroProposta,
		"parcelas": len(salva.ParcelasRecebimento),
	}).Info("venda salva")
	utils.WriteJSON(w, status, salva)
}

// DELETE /api/venda/{id}/
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

// FiltroDaQuery lê busca, status, inicio e fim da query string.
func FiltroDaQuery(r *http.Request, padrao FiltroStatus) (Filtro, utils.ErrosCampo) {
	q := r.URL.Query()
	erros := utils.ErrosCampo{}
	f := Filtro{Busca: q.Get("busca"), Status: padrao}

	if s := q.Get("status"); s != "" {
		st, err := ParseFiltroStatus(s)
		if err != nil {
			erros.Adicionar("status", err.Error())
		}
		f.Status = st
	}
	for campo, destino := range map[string]**models.Data{"inicio": &f.Inicio, "fim": &f.Fim} {
		if s := q.Get(campo); s != "" {
			d, err := models.ParseData(s)
			if err != nil {
				erros.Adicionar(campo, msgData)
				continue
			}
			*destino = &d
		}
	}
	return f, erros
}

// GET /api/venda/exportar/?busca=&status=&inicio=&fim=
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	f, erros := FiltroDaQuery(r, Todos)
	if !erros.Vazio() {
		utils.WriteErros(w, erros)
		return
	}
	vendas, err := h.Repository.Listar(h.DB)
	if err != nil {
		h.responderErro(w, err, "exportar")
		return
	}

	var buf bytes.Buffer
	if err := ExportarPlanilha(&buf, Filtrar(vendas, f), h.Agora()); err != nil {
		h.responderErro(w, err, "exportar")
		return
	}
	nome := fmt.Sprintf("recebimentos-%s.xlsx", h.Agora().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+nome+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) responderErro(w http.ResponseWriter, err error, acao string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteDetalhe(w, http.StatusNotFound, "Venda não encontrada.")
		return
	}
	h.Log.WithError(err).WithField("acao", acao).Error("erro no cadastro de vendas")
	utils.WriteDetalhe(w, http.StatusInternalServerError, "Erro ao "+acao+" venda.")
}

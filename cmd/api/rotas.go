package main

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/auth"
	"github.com/corretora/sistema-comissoes/internal/cliente"
	"github.com/corretora/sistema-comissoes/internal/config"
	"github.com/corretora/sistema-comissoes/internal/consultor"
	"github.com/corretora/sistema-comissoes/internal/logger"
	"github.com/corretora/sistema-comissoes/internal/metrics"
	"github.com/corretora/sistema-comissoes/internal/notificacao"
	"github.com/corretora/sistema-comissoes/internal/parcela"
	"github.com/corretora/sistema-comissoes/internal/plano"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

type dependencias struct {
	db          *gorm.DB
	cfg         *config.Servidor
	emissor     *auth.Emissor
	notificador notificacao.Notificador
	metricas    *metrics.Metricas
	log         *logrus.Logger
	logHTTP     *logrus.Logger
}

func montarRouter(d dependencias) http.Handler {
	authHandler := auth.NewHandler(d.db, d.emissor, d.log)
	clienteHandler := cliente.NewHandler(d.db, d.log)
	consultorHandler := consultor.NewHandler(d.db, d.log)
	planoHandler := plano.NewHandler(d.db, d.log)
	parcelaHandler := parcela.NewHandler(d.db, d.log)
	vendaHandler := venda.NewHandler(d.db, d.log)
	recebimentoHandler := recebimento.NewHandler(d.db, d.notificador, d.metricas, d.log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logger.Requisicoes(d.logHTTP), middleware.Recoverer)
	if d.metricas != nil {
		r.Use(d.metricas.Middleware)
		r.Handle("/metrics", d.metricas.Handler()).Methods(http.MethodGet)
	}

	// Rotas públicas
	r.HandleFunc("/api/token/", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/token/verify/", authHandler.Verificar).Methods(http.MethodPost)
	r.HandleFunc("/api/token/refresh/", authHandler.Renovar).Methods(http.MethodPost)
	r.HandleFunc("/register/", authHandler.Registrar).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(d.emissor.Middleware)

	// Clientes
	api.HandleFunc("/clientes/", clienteHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/clientes/", clienteHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/clientes/{id:[0-9]+}/", clienteHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/clientes/{id:[0-9]+}/", clienteHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/clientes/{id:[0-9]+}/", clienteHandler.Deletar).Methods(http.MethodDelete)

	// Consultores
	api.HandleFunc("/consultor/", consultorHandler.ListarConsultores).Methods(http.MethodGet)
	api.HandleFunc("/consultor/", consultorHandler.CriarConsultor).Methods(http.MethodPost)
	api.HandleFunc("/consultor/{id:[0-9]+}/", consultorHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/consultor/{id:[0-9]+}/", consultorHandler.AtualizarConsultor).Methods(http.MethodPut)
	api.HandleFunc("/consultor/{id:[0-9]+}/", consultorHandler.DeletarConsultor).Methods(http.MethodDelete)
	api.HandleFunc("/consultor/{id:[0-9]+}/resumo/", consultorHandler.ObterResumoConsultor).Methods(http.MethodGet)

	// Planos e modelos de parcela
	api.HandleFunc("/plano/", planoHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/plano/", planoHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/plano/{id:[0-9]+}/", planoHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/plano/{id:[0-9]+}/", planoHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/plano/{id:[0-9]+}/", planoHandler.Deletar).Methods(http.MethodDelete)

	api.HandleFunc("/parcela/", parcelaHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/parcela/", parcelaHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/parcela/{id:[0-9]+}/", parcelaHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/parcela/{id:[0-9]+}/", parcelaHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/parcela/{id:[0-9]+}/", parcelaHandler.Deletar).Methods(http.MethodDelete)

	// Vendas (exportar antes de {id})
	api.HandleFunc("/venda/", vendaHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/venda/", vendaHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/venda/exportar/", vendaHandler.Exportar).Methods(http.MethodGet)
	api.HandleFunc("/venda/{id:[0-9]+}/", vendaHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/venda/{id:[0-9]+}/", vendaHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/venda/{id:[0-9]+}/", vendaHandler.Deletar).Methods(http.MethodDelete)

	// Controle de recebimento
	api.HandleFunc("/controlederecebimento/", recebimentoHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/controlederecebimento/{id:[0-9]+}/", recebimentoHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/controlederecebimento/{id:[0-9]+}/", recebimentoHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/controlederecebimento/{id:[0-9]+}/", recebimentoHandler.AtualizarParcial).Methods(http.MethodPatch)
	api.HandleFunc("/controlederecebimento/{id:[0-9]+}/", recebimentoHandler.Deletar).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins:   d.cfg.Origens(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})
	return c.Handler(middleware.Timeout(d.cfg.Timeout())(r))
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	"github.com/corretora/sistema-comissoes/internal/utils/db"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

func main() {
	cfg, err := config.CarregarServidor()
	if err != nil {
		logrus.Fatalf("Erro ao carregar configuração: %v", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		logrus.Fatalf("Erro ao iniciar logs: %v", err)
	}
	log := logger.App()

	database, err := db.ConnectDataBase(cfg.Banco, log)
	if err != nil {
		log.WithError(err).Fatal("Erro ao conectar no banco")
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&auth.Usuario{},
		&cliente.Cliente{},
		&consultor.Consultor{},
		&plano.Plano{},
		&parcela.Parcela{},
		&venda.Venda{},
		&recebimento.ControleDeRecebimento{},
	); err != nil {
		log.WithError(err).Fatal("Erro no AutoMigrate")
	}

	notificador, fechar := montarNotificador(cfg, log)
	defer fechar()

	var metricas *metrics.Metricas
	if cfg.MetricasHabilitadas {
		metricas = metrics.New()
	}

	handler := montarRouter(dependencias{
		db:          database,
		cfg:         cfg,
		emissor:     auth.NewEmissor(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL()),
		notificador: notificador,
		metricas:    metricas,
		log:         log,
		logHTTP:     logger.HTTP(),
	})

	srv := &http.Server{
		Addr:              cfg.Endereco,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("endereco", cfg.Endereco).Info("Servidor rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Erro no servidor HTTP")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Erro ao encerrar servidor")
	}
	fecharBanco(database, log)
}

// montarNotificador combina webhook e RabbitMQ conforme a configuração.
// Sem nenhum destino configurado os eventos são descartados.
func montarNotificador(cfg *config.Servidor, log *logrus.Logger) (notificacao.Notificador, func()) {
	var destinos notificacao.Multi
	fechar := func() {}

	if cfg.WebhookURL != "" {
		destinos = append(destinos, notificacao.NovoWebhook(cfg.WebhookURL))
	}
	if cfg.RabbitMQURL != "" {
		rmq, err := notificacao.NovoRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQFila)
		if err != nil {
			log.WithError(err).Warn("RabbitMQ indisponível, eventos não serão publicados na fila")
		} else {
			destinos = append(destinos, rmq)
			fechar = func() {
				if err := rmq.Close(); err != nil {
					log.WithError(err).Warn("Erro ao fechar conexão com RabbitMQ")
				}
			}
		}
	}
	if len(destinos) == 0 {
		return notificacao.Nulo{}, fechar
	}
	return notificacao.Assincrono{Destino: destinos, Timeout: 10 * time.Second, Log: log}, fechar
}

func fecharBanco(database *gorm.DB, log *logrus.Logger) {
	sqlDB, err := database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("Erro ao fechar conexão com o banco")
	}
}

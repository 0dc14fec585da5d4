package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/corretora/sistema-comissoes/internal/config"
	"github.com/corretora/sistema-comissoes/internal/gateway"
	"github.com/corretora/sistema-comissoes/internal/logger"
	"github.com/corretora/sistema-comissoes/internal/sessao"
)

// app reúne o que os comandos compartilham; é montado no PersistentPreRunE.
type app struct {
	cfg    *config.Cliente
	log    *logrus.Logger
	sessao *sessao.Sessao
	api    *gateway.Client
	guard  *sessao.Guard
}

func (a *app) iniciar(arquivoEnv string) error {
	var arquivos []string
	if arquivoEnv != "" {
		arquivos = append(arquivos, arquivoEnv)
	}
	cfg, err := config.CarregarCliente(arquivos...)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Get("painel")

	s, err := sessao.Nova(sessao.ArquivoStore{Caminho: cfg.ArquivoSessao})
	if err != nil {
		a.log.WithError(err).Warn("sessão salva ignorada")
	}
	a.sessao = s

	api, err := gateway.New(cfg.BaseURL, s,
		gateway.ComHTTPClient(novoHTTPClient(cfg.Timeout())),
		gateway.ComLog(a.log))
	if err != nil {
		return err
	}
	a.api = api
	a.guard = &sessao.Guard{Sessao: s, Verificador: api}
	return nil
}

// exigirLogin confere a sessão e, se o access expirou, tenta o refresh uma vez.
func (a *app) exigirLogin(ctx context.Context) error {
	if err := a.guard.Exigir(ctx); err == nil {
		return nil
	}
	refresh := a.sessao.Refresh()
	if refresh == "" {
		return sessao.ErrLoginNecessario
	}
	access, err := a.api.Renovar(ctx, refresh)
	if err != nil {
		a.log.WithError(err).Debug("refresh recusado")
		return sessao.ErrLoginNecessario
	}
	if err := a.sessao.AtualizarAccess(access); err != nil {
		a.log.WithError(err).Warn("não foi possível salvar a sessão")
	}
	return a.guard.Exigir(ctx)
}

func novoRoot() *cobra.Command {
	a := &app{}
	var arquivoEnv string

	root := &cobra.Command{
		Use:           "painel",
		Short:         "Controle de recebimento de comissões",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.iniciar(arquivoEnv); err != nil {
				return err
			}
			if cmd.Annotations["publico"] == "sim" {
				return nil
			}
			return a.exigirLogin(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&arquivoEnv, "env", "", "arquivo .env com a configuração")

	root.AddCommand(
		cmdLogin(a),
		cmdLogout(a),
		cmdVendas(a),
		cmdMarcar(a),
		cmdEditar(a),
		cmdDashboard(a),
		cmdExportar(a),
	)
	return root
}

func main() {
	if err := novoRoot().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, sessao.ErrLoginNecessario) {
			fmt.Fprintln(os.Stderr, "Sessão expirada ou inexistente. Use: painel login")
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Erro:", err)
		os.Exit(1)
	}
}

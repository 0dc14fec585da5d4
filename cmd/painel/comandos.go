package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/corretora/sistema-comissoes/internal/dashboard"
	"github.com/corretora/sistema-comissoes/internal/gateway"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/painel"
	"github.com/corretora/sistema-comissoes/internal/sessao"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

var publico = map[string]string{"publico": "sim"}

func novoHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func cmdLogin(a *app) *cobra.Command {
	var usuario, senha string
	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Autentica e guarda a sessão",
		Annotations: publico,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if senha == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Senha: ")
				linha, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && linha == "" {
					return fmt.Errorf("ler senha: %w", err)
				}
				senha = strings.TrimSpace(linha)
			}
			par, err := a.api.Login(cmd.Context(), usuario, senha)
			if err != nil {
				if errors.Is(err, gateway.ErrNaoAutorizado) {
					return errors.New("usuário ou senha inválidos")
				}
				return err
			}
			if err := a.sessao.Definir(sessao.Dados{Access: par.Access, Refresh: par.Refresh, Usuario: usuario}); err != nil {
				return fmt.Errorf("salvar sessão: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bem-vindo, %s.\n", usuario)
			return nil
		},
	}
	cmd.Flags().StringVarP(&usuario, "usuario", "u", "", "nome de usuário")
	cmd.Flags().StringVarP(&senha, "senha", "p", "", "senha (pedida no terminal se omitida)")
	_ = cmd.MarkFlagRequired("usuario")
	return cmd
}

func cmdLogout(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Apaga a sessão salva",
		Annotations: publico,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.sessao.Limpar()
		},
	}
}

// filtros são as opções de busca comuns a vendas e exportar.
type filtros struct {
	busca  string
	status string
	inicio string
	fim    string
}

func (f *filtros) registrar(cmd *cobra.Command, statusPadrao venda.FiltroStatus) {
	cmd.Flags().StringVarP(&f.busca, "busca", "b", "", "proposta ou nome do cliente")
	cmd.Flags().StringVarP(&f.status, "status", "s", string(statusPadrao), `"Em andamento", "Finalizados" ou "Todos"`)
	cmd.Flags().StringVar(&f.inicio, "inicio", "", "data de venda inicial (AAAA-MM-DD)")
	cmd.Flags().StringVar(&f.fim, "fim", "", "data de venda final (AAAA-MM-DD)")
}

func parseDataOpcional(nome, s string) (*models.Data, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseData(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", nome, err)
	}
	return &d, nil
}

func (f filtros) aplicar(e *painel.Engine) error {
	status, err := venda.ParseFiltroStatus(f.status)
	if err != nil {
		return err
	}
	inicio, err := parseDataOpcional("inicio", f.inicio)
	if err != nil {
		return err
	}
	fim, err := parseDataOpcional("fim", f.fim)
	if err != nil {
		return err
	}
	e.DefinirStatus(status)
	e.DefinirPeriodo(inicio, fim)
	e.AplicarBusca(f.busca)
	return nil
}

func (a *app) novoPainel() *painel.Engine {
	return painel.New(a.api, painel.Opcoes{
		DebounceEdicao: a.cfg.DebounceEdicao(),
		DebounceBusca:  a.cfg.DebounceBusca(),
		Timeout:        a.cfg.Timeout(),
		Log:            a.log,
	})
}

// carregar busca as vendas e devolve erro se o painel ficou com aviso.
func carregar(e *painel.Engine) (painel.Visao, error) {
	e.Carregar()
	e.Aguardar()
	v := e.Visao()
	if v.Erro != "" {
		return v, errors.New(v.Erro)
	}
	return v, nil
}

func cmdVendas(a *app) *cobra.Command {
	var f filtros
	var detalhes bool
	cmd := &cobra.Command{
		Use:   "vendas",
		Short: "Lista as vendas com o progresso de recebimento",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := a.novoPainel()
			defer e.Fechar()
			if err := f.aplicar(e); err != nil {
				return err
			}
			v, err := carregar(e)
			if err != nil {
				return err
			}
			if detalhes {
				for _, l := range v.Vendas {
					e.AlternarDetalhes(l.Venda.ID)
				}
				v = e.Visao()
			}
			return imprimirVendas(cmd.OutOrStdout(), v)
		},
	}
	f.registrar(cmd, venda.EmAndamento)
	cmd.Flags().BoolVarP(&detalhes, "detalhes", "d", false, "mostra as parcelas de cada venda")
	return cmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return uint(id), nil
}

// aplicarEdicao carrega o painel, executa a ação e espera as gravações.
func (a *app) aplicarEdicao(acao func(e *painel.Engine) error) (painel.Visao, error) {
	e := a.novoPainel()
	defer e.Fechar()
	e.DefinirStatus(venda.Todos)
	if _, err := carregar(e); err != nil {
		return painel.Visao{}, err
	}
	if err := acao(e); err != nil {
		return painel.Visao{}, err
	}
	e.GravarPendentes()
	e.Aguardar()
	v := e.Visao()
	if v.Erro != "" {
		return v, errors.New(v.Erro)
	}
	return v, nil
}

func cmdMarcar(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "marcar <id-recebimento>...",
		Short: "Marca parcelas como recebidas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint, 0, len(args))
			for _, s := range args {
				id, err := parseID(s)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			v, err := a.aplicarEdicao(func(e *painel.Engine) error {
				for _, id := range ids {
					if err := e.MarcarRecebida(id); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, id := range ids {
				if p, ok := encontrarParcela(v, id); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Parcela %d: %s em %s\n", id, p.Recebimento.Status, p.DataRecebimento)
				}
			}
			return nil
		},
	}
}

func cmdEditar(a *app) *cobra.Command {
	var data, extrato string
	cmd := &cobra.Command{
		Use:   "editar <id-recebimento>",
		Short: "Altera data de recebimento e/ou número do extrato",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			mudouData, mudouExtrato := cmd.Flags().Changed("data"), cmd.Flags().Changed("extrato")
			if !mudouData && !mudouExtrato {
				return errors.New("informe --data e/ou --extrato")
			}
			v, err := a.aplicarEdicao(func(e *painel.Engine) error {
				if mudouData {
					if err := e.EditarCampo(id, painel.CampoDataRecebimento, data); err != nil {
						return err
					}
				}
				if mudouExtrato {
					return e.EditarCampo(id, painel.CampoNumeroExtrato, extrato)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if p, ok := encontrarParcela(v, id); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Parcela %d: recebida em %q, extrato %q, %d dia(s) de atraso\n",
					id, p.DataRecebimento, p.NumeroExtrato, p.DiasAtraso)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "data de recebimento (AAAA-MM-DD, vazio limpa)")
	cmd.Flags().StringVar(&extrato, "extrato", "", "número do extrato bancário")
	return cmd
}

func encontrarParcela(v painel.Visao, id uint) (painel.LinhaParcela, bool) {
	for _, l := range v.Vendas {
		for _, p := range l.Parcelas {
			if p.Recebimento.ID == id {
				return p, true
			}
		}
	}
	return painel.LinhaParcela{}, false
}

func cmdDashboard(a *app) *cobra.Command {
	var comoJSON bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Resumo de vendas por mês, semana, consultor, plano e status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dashboard.Carregar(cmd.Context(), a.api, time.Now())
			if err != nil {
				a.log.WithError(err).Error("erro ao buscar dados do dashboard")
				return errors.New(dashboard.MsgErro)
			}
			if comoJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			return imprimirDashboard(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().BoolVar(&comoJSON, "json", false, "saída em JSON, pronta para gráficos")
	return cmd
}

func cmdExportar(a *app) *cobra.Command {
	var f filtros
	var saida string
	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Gera uma planilha .xlsx com as parcelas das vendas filtradas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := a.novoPainel()
			defer e.Fechar()
			if err := f.aplicar(e); err != nil {
				return err
			}
			v, err := carregar(e)
			if err != nil {
				return err
			}
			vendas := make([]venda.Venda, 0, len(v.Vendas))
			for _, l := range v.Vendas {
				vendas = append(vendas, l.Venda)
			}

			arq, err := os.Create(saida)
			if err != nil {
				return fmt.Errorf("criar %s: %w", saida, err)
			}
			if err := venda.ExportarPlanilha(arq, vendas, time.Now()); err != nil {
				arq.Close()
				return err
			}
			if err := arq.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d venda(s) exportada(s) para %s\n", len(vendas), saida)
			return nil
		},
	}
	f.registrar(cmd, venda.Todos)
	cmd.Flags().StringVarP(&saida, "saida", "o", "recebimentos.xlsx", "arquivo de saída")
	return cmd
}

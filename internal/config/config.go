package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Banco reúne os dados de conexão com o Postgres.
type Banco struct {
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Porta       int    `env:"DB_PORT" envDefault:"5432"`
	Usuario     string `env:"DB_USERNAME" envDefault:"postgres"`
	Senha       string `env:"DB_PASSWORD"`
	Nome        string `env:"DB_NAME" envDefault:"sistema_comissoes"`
	SSLMode     string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxConexoes int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
}

// DSN monta a string de conexão no formato "host=... port=... user=...".
func (b Banco) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		b.Host, b.Porta, b.Usuario, b.Nome, b.SSLMode)
	if b.Senha != "" {
		dsn += " password=" + b.Senha
	}
	return dsn
}

// Log configura o logrus (ver internal/logger).
type Log struct {
	Nivel      string `env:"LOG_LEVEL" envDefault:"info"`
	Formato    string `env:"LOG_FORMAT" envDefault:"text"`   // text | json
	Saida      string `env:"LOG_OUTPUT" envDefault:"stdout"` // stdout | file | both
	Diretorio  string `env:"LOG_PATH" envDefault:"logs"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE" envDefault:"50"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDias int    `env:"LOG_MAX_AGE" envDefault:"30"`
	Comprimir  bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

// Servidor é a configuração do cmd/api.
type Servidor struct {
	Endereco            string `env:"ADDRESS" envDefault:":8000"`
	JWTSecret           string `env:"JWT_SECRET,required"`
	AccessTTLMinutos    int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	RefreshTTLHoras     int    `env:"JWT_REFRESH_TTL_HOURS" envDefault:"24"`
	CORSOrigens         string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	TimeoutSegundos     int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"60"`
	MetricasHabilitadas bool   `env:"METRICS_ENABLED" envDefault:"true"`
	RabbitMQURL         string `env:"RABBITMQ_URL"`
	RabbitMQFila        string `env:"RABBITMQ_QUEUE" envDefault:"comissoes.recebimentos"`
	WebhookURL          string `env:"WEBHOOK_URL"`

	Banco Banco
	Log   Log
}

func (s Servidor) AccessTTL() time.Duration {
	return time.Duration(s.AccessTTLMinutos) * time.Minute
}

func (s Servidor) RefreshTTL() time.Duration {
	return time.Duration(s.RefreshTTLHoras) * time.Hour
}

func (s Servidor) Timeout() time.Duration {
	return time.Duration(s.TimeoutSegundos) * time.Second
}

// Origens separa CORS_ORIGINS por vírgula.
func (s Servidor) Origens() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigens, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Cliente é a configuração do cmd/painel.
type Cliente struct {
	BaseURL          string `env:"API_BASE_URL" envDefault:"http://localhost:8000/"`
	ArquivoSessao    string `env:"SESSION_FILE"`
	TimeoutSegundos  int    `env:"API_TIMEOUT_SECONDS" envDefault:"15"`
	DebounceEdicaoMS int    `env:"DEBOUNCE_EDIT_MS" envDefault:"500"`
	DebounceBuscaMS  int    `env:"DEBOUNCE_SEARCH_MS" envDefault:"300"`

	Log Log
}

func (c Cliente) Timeout() time.Duration {
	return time.Duration(c.TimeoutSegundos) * time.Second
}

func (c Cliente) DebounceEdicao() time.Duration {
	return time.Duration(c.DebounceEdicaoMS) * time.Millisecond
}

func (c Cliente) DebounceBusca() time.Duration {
	return time.Duration(c.DebounceBuscaMS) * time.Millisecond
}

// carregarEnv lê o .env se existir; variáveis já exportadas têm prioridade.
func carregarEnv(arquivos ...string) {
	if len(arquivos) == 0 {
		arquivos = []string{".env"}
	}
	for _, f := range arquivos {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// CarregarServidor lê a configuração do servidor.
func CarregarServidor(arquivos ...string) (*Servidor, error) {
	carregarEnv(arquivos...)
	cfg := &Servidor{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config do servidor: %w", err)
	}
	if err := env.Parse(&cfg.Banco); err != nil {
		return nil, fmt.Errorf("config do banco: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("config de log: %w", err)
	}
	return cfg, nil
}

// CarregarCliente lê a configuração do painel de linha de comando.
func CarregarCliente(arquivos ...string) (*Cliente, error) {
	carregarEnv(arquivos...)
	cfg := &Cliente{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config do painel: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("config de log: %w", err)
	}
	if cfg.ArquivoSessao == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.ArquivoSessao = dir + "/sistema-comissoes/sessao.json"
		} else {
			cfg.ArquivoSessao = ".sessao.json"
		}
	}
	return cfg, nil
}

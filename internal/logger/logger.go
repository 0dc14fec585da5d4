package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/corretora/sistema-comissoes/internal/config"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex
	cfg       = config.Log{Nivel: "info", Formato: "text", Saida: "stdout"}
)

// Init define a configuração usada pelos loggers criados a partir daqui.
func Init(c config.Log) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if c.Saida == "file" || c.Saida == "both" {
		if err := os.MkdirAll(c.Diretorio, 0o755); err != nil {
			return fmt.Errorf("falha ao criar diretório de logs: %w", err)
		}
	}
	cfg = c
	loggers = make(map[string]*logrus.Logger)
	return nil
}

// Get retorna o logger de nome informado (app, http, painel...).
func Get(nome string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[nome]; ok {
		return l
	}
	l := novo(nome, cfg)
	loggers[nome] = l
	return l
}

func App() *logrus.Logger { return Get("app") }

func HTTP() *logrus.Logger { return Get("http") }

func novo(nome string, c config.Log) *logrus.Logger {
	l := logrus.New()

	nivel, err := logrus.ParseLevel(c.Nivel)
	if err != nil {
		nivel = logrus.InfoLevel
	}
	l.SetLevel(nivel)

	if c.Formato == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	if c.Saida == "file" || c.Saida == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(c.Diretorio, nome+".log"),
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDias,
			Compress:   c.Comprimir,
		})
	}
	if c.Saida == "stdout" || c.Saida == "both" || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))
	return l
}

// Silencioso devolve um logger que descarta tudo; usado nos testes.
func Silencioso() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

package db

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/corretora/sistema-comissoes/internal/config"
)

// ConnectDataBase abre o pool do Postgres a partir da configuração.
func ConnectDataBase(cfg config.Banco, log *logrus.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar no banco %s@%s:%d: %w", cfg.Nome, cfg.Host, cfg.Porta, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("obter pool sql: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConexoes)

	log.WithFields(logrus.Fields{
		"host": cfg.Host,
		"db":   cfg.Nome,
	}).Info("conectado ao banco")
	return database, nil
}

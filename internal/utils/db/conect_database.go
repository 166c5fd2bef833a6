package db

import (
	"fmt"

	"github.com/BolzoniProducoes/api-gestao/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN monta a string de conexão do Postgres.
func DSN(c config.DBConfig) string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d", c.Host, c.User, c.Password, c.Name, c.Port)
	if c.SSLMode != "" {
		dsn += " sslmode=" + c.SSLMode
	}
	return dsn
}

func ConnectDataBase(c config.DBConfig) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(DSN(c)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("conectar no banco: %w", err)
	}
	return database, nil
}

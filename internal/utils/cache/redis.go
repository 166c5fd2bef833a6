package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/config"
	"github.com/redis/go-redis/v9"
)

const timeoutConexao = 3 * time.Second

// NewRedis abre o cliente e confere a conexão com um PING.
// Sem endereço configurado devolve nil: o cache fica desligado.
func NewRedis(c config.RedisConfig) (*redis.Client, error) {
	if c.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		MaxRetries:   2,
		DialTimeout:  timeoutConexao,
		ReadTimeout:  timeoutConexao,
		WriteTimeout: timeoutConexao,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeoutConexao)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar no redis %s: %w", c.Addr, err)
	}
	return rdb, nil
}

// Close fecha o cliente, se houver.
func Close(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}

package taxas

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const chaveCache = "bolzoni:configuracao:financeiro"

// Cache guarda o retrato das configurações no Redis. Falhas do Redis nunca
// impedem o cálculo: a leitura cai direto no repositório.
type Cache struct {
	repo  Repositorio
	rdb   *redis.Client
	ttl   time.Duration
	grupo singleflight.Group
}

// NewCache envolve o repositório. Com rdb nil o cache fica desligado.
func NewCache(repo Repositorio, rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{repo: repo, rdb: rdb, ttl: ttl}
}

func (c *Cache) Carregar(ctx context.Context) (Configuracao, error) {
	if c.rdb == nil {
		return c.repo.Carregar(ctx)
	}

	raw, err := c.rdb.Get(ctx, chaveCache).Bytes()
	switch {
	case err == nil:
		var cfg Configuracao
		errJSON := json.Unmarshal(raw, &cfg)
		if errJSON == nil {
			metrics.CacheConfiguracao.WithLabelValues("hit").Inc()
			return cfg, nil
		}
		zap.L().Warn("cache de configuração corrompido", zap.Error(errJSON))
	case !errors.Is(err, redis.Nil):
		zap.L().Warn("falha ao ler cache de configuração", zap.Error(err))
	}
	metrics.CacheConfiguracao.WithLabelValues("miss").Inc()

	v, err, _ := c.grupo.Do(chaveCache, func() (any, error) {
		cfg, err := c.repo.Carregar(ctx)
		if err != nil {
			return Configuracao{}, err
		}
		b, err := json.Marshal(cfg)
		if err == nil {
			err = c.rdb.Set(ctx, chaveCache, b, c.ttl).Err()
		}
		if err != nil {
			zap.L().Warn("falha ao gravar cache de configuração", zap.Error(err))
		}
		return cfg, nil
	})
	if err != nil {
		return Configuracao{}, err
	}
	return v.(Configuracao), nil
}

// Salvar persiste no repositório e invalida o cache.
func (c *Cache) Salvar(ctx context.Context, cfg Configuracao) error {
	if err := c.repo.Salvar(ctx, cfg); err != nil {
		return err
	}
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, chaveCache).Err(); err != nil {
			zap.L().Warn("falha ao invalidar cache de configuração", zap.Error(err))
		}
	}
	return nil
}

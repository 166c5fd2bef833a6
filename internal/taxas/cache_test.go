package taxas

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupCache(t *testing.T) (*Cache, *repoMemoria, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &repoMemoria{cfg: configPersonalizada()}
	return NewCache(repo, rdb, time.Minute), repo, mr
}

func TestCache_CarregaUmaVez(t *testing.T) {
	ctx := context.Background()
	cache, repo, mr := setupCache(t)

	cfg, err := cache.Carregar(ctx)
	require.NoError(t, err)
	require.True(t, d("3.2").Equal(cfg.Personalizadas.CreditoAVista))
	require.True(t, mr.Exists(chaveCache))
	require.Equal(t, time.Minute, mr.TTL(chaveCache))

	cfg, err = cache.Carregar(ctx)
	require.NoError(t, err)
	require.True(t, d("1.99").Equal(cfg.JurosMensalManual))
	require.Equal(t, 1, repo.totalCargas())
}

func TestCache_SalvarInvalida(t *testing.T) {
	ctx := context.Background()
	cache, repo, mr := setupCache(t)

	_, err := cache.Carregar(ctx)
	require.NoError(t, err)

	nova := Configuracao{Modo: ModoSumup, FaixaSelecionada: 2}
	require.NoError(t, cache.Salvar(ctx, nova))
	require.False(t, mr.Exists(chaveCache))

	cfg, err := cache.Carregar(ctx)
	require.NoError(t, err)
	require.Equal(t, ModoSumup, cfg.Modo)
	require.Equal(t, 2, cfg.FaixaSelecionada)
	require.Equal(t, 2, repo.totalCargas())
}

func TestCache_RedisForaDoAr(t *testing.T) {
	cache, repo, mr := setupCache(t)
	mr.Close()

	cfg, err := cache.Carregar(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg.Personalizadas)
	require.Equal(t, 1, repo.totalCargas())
}

func TestCache_ErroDoRepositorio(t *testing.T) {
	cache, repo, mr := setupCache(t)
	repo.err = errors.New("banco fora")

	_, err := cache.Carregar(context.Background())
	require.Error(t, err)
	require.False(t, mr.Exists(chaveCache))
}

func TestCache_ConcorrenteNaoQuebra(t *testing.T) {
	cache, repo, _ := setupCache(t)

	var wg sync.WaitGroup
	erros := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Carregar(context.Background())
			erros <- err
		}()
	}
	wg.Wait()
	close(erros)
	for err := range erros {
		require.NoError(t, err)
	}

	require.LessOrEqual(t, repo.totalCargas(), 20)
	require.GreaterOrEqual(t, repo.totalCargas(), 1)
}

func TestCache_SemRedis(t *testing.T) {
	repo := &repoMemoria{cfg: configPersonalizada()}
	cache := NewCache(repo, nil, time.Minute)

	_, err := cache.Carregar(context.Background())
	require.NoError(t, err)
	_, err = cache.Carregar(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.totalCargas())
}

func TestCache_CorrompidoRecarregaERegistraErro(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	ctx := context.Background()
	cache, repo, mr := setupCache(t)
	require.NoError(t, mr.Set(chaveCache, "{quebrado"))

	cfg, err := cache.Carregar(ctx)
	require.NoError(t, err)
	require.Equal(t, ModoPersonalizado, cfg.Modo)
	require.Equal(t, 1, repo.totalCargas())

	avisos := logs.FilterMessage("cache de configuração corrompido").All()
	require.Len(t, avisos, 1)
	require.NotNil(t, avisos[0].ContextMap()["error"])
}

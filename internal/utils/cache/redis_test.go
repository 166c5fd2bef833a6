package cache

import (
	"testing"

	"github.com/BolzoniProducoes/api-gestao/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_SemEndereco(t *testing.T) {
	rdb, err := NewRedis(config.RedisConfig{})
	require.NoError(t, err)
	require.Nil(t, rdb)
	Close(rdb)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	Close(rdb)
}

func TestNewRedis_ForaDoAr(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(config.RedisConfig{Addr: addr})
	require.Error(t, err)
}

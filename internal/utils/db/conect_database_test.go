package db

import (
	"testing"

	"github.com/BolzoniProducoes/api-gestao/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "bolzoni", SSLMode: "disable"}
	require.Equal(t, "host=db user=u password=p dbname=bolzoni port=5433 sslmode=disable", DSN(c))

	c.SSLMode = ""
	require.Equal(t, "host=db user=u password=p dbname=bolzoni port=5433", DSN(c))
}

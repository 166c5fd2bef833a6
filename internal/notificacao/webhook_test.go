package notificacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhook_Enviar(t *testing.T) {
	recebido := make(chan Aviso, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var a Aviso
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&a))
		recebido <- a
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL).Enviar(context.Background(), Aviso{Tipo: "evento_criado", Mensagem: "Festa", EventoID: 9})
	require.NoError(t, err)

	a := <-recebido
	require.Equal(t, "evento_criado", a.Tipo)
	require.Equal(t, uint(9), a.EventoID)
	require.False(t, a.Data.IsZero())
}

func TestWebhook_StatusDeErro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL).Enviar(context.Background(), Aviso{Tipo: "x"})
	require.Error(t, err)
}

func TestWebhook_Desligado(t *testing.T) {
	require.NoError(t, NewWebhook("").Enviar(context.Background(), Aviso{}))

	var w *Webhook
	require.NoError(t, w.Enviar(context.Background(), Aviso{}))
	w.Notificar(Aviso{})
}

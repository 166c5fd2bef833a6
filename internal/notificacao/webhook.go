package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Aviso é o corpo enviado ao webhook.
type Aviso struct {
	Tipo     string    `json:"tipo"`
	Mensagem string    `json:"mensagem"`
	EventoID uint      `json:"eventoId,omitempty"`
	Data     time.Time `json:"data"`
}

// Webhook publica avisos num endpoint HTTP externo (ex.: automação de WhatsApp).
// URL vazia desliga o envio.
type Webhook struct {
	URL  string
	HTTP *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{URL: url, HTTP: &http.Client{Timeout: 5 * time.Second}}
}

// Enviar faz o POST do aviso e devolve erro para status fora da faixa 2xx.
func (w *Webhook) Enviar(ctx context.Context, a Aviso) error {
	if w == nil || w.URL == "" {
		return nil
	}
	if a.Data.IsZero() {
		a.Data = time.Now()
	}
	body, err := json.Marshal(a)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

// Notificar envia em segundo plano; falhas só vão para o log.
func (w *Webhook) Notificar(a Aviso) {
	if w == nil || w.URL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := w.Enviar(ctx, a); err != nil {
			zap.L().Warn("falha ao enviar aviso", zap.Error(err), zap.String("tipo", a.Tipo))
		}
	}()
}

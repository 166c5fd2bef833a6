package taxas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// ErrSubstituida é devolvido a uma consulta cancelada porque outra mais nova começou.
var ErrSubstituida = errors.New("consulta de taxa substituída por uma mais recente")

// Cliente consulta GET /taxas. Cada nova consulta cancela a anterior ainda em
// andamento, de modo que só a resposta mais recente é aproveitada.
// Em qualquer falha a Taxa devolvida é zero e pode ser usada diretamente.
type Cliente struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	mu       sync.Mutex
	seq      uint64
	cancelar context.CancelFunc
}

func NewCliente(baseURL, token string) *Cliente {
	return &Cliente{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    http.DefaultClient,
	}
}

func (c *Cliente) Consultar(ctx context.Context, consulta Consulta) (Taxa, error) {
	c.mu.Lock()
	if c.cancelar != nil {
		c.cancelar()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.seq++
	minha := c.seq
	c.cancelar = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.seq == minha {
			c.cancelar = nil
		}
		c.mu.Unlock()
		cancel()
	}()

	taxa, err := c.buscar(ctx, consulta)

	c.mu.Lock()
	substituida := c.seq != minha
	c.mu.Unlock()
	if substituida {
		return Taxa{}, ErrSubstituida
	}
	if err != nil {
		return Taxa{}, err
	}
	return taxa, nil
}

func (c *Cliente) buscar(ctx context.Context, consulta Consulta) (Taxa, error) {
	q := url.Values{}
	q.Set("metodo", string(consulta.Metodo))
	if consulta.Bandeira != "" {
		q.Set("bandeira", string(consulta.Bandeira))
	}
	q.Set("parcelas", strconv.Itoa(NormalizarParcelas(consulta.Parcelas)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/taxas?"+q.Encode(), nil)
	if err != nil {
		return Taxa{}, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Taxa{}, fmt.Errorf("consultar taxa: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Taxa{}, ErrNaoConfigurado
	default:
		return Taxa{}, fmt.Errorf("consultar taxa: status %d", resp.StatusCode)
	}

	var taxa Taxa
	if err := json.NewDecoder(resp.Body).Decode(&taxa); err != nil {
		return Taxa{}, fmt.Errorf("decodificar taxa: %w", err)
	}
	return taxa, nil
}

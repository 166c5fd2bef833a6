package evento

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/notificacao"
	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fonteFixa struct {
	cfg taxas.Configuracao
	err error
}

func (f fonteFixa) Carregar(context.Context) (taxas.Configuracao, error) { return f.cfg, f.err }

type precosFixos map[uint]decimal.Decimal

func (p precosFixos) PrecosVenda(_ context.Context, ids []uint) (map[uint]decimal.Decimal, error) {
	out := map[uint]decimal.Decimal{}
	for _, id := range ids {
		if v, ok := p[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func TestHandler_CalcularComposicao(t *testing.T) {
	h := NewHandler(nil, fonteFixa{cfg: taxas.Configuracao{ValorKm: d("2")}}, precosFixos{1: d("120"), 2: d("180")})

	body := `{
		"personagensIds": [1, 2, 2],
		"despesas": [{"titulo": "Balões", "valor": "50,00"}],
		"caches": [{"funcionarioId": 4, "valorCache": 80}],
		"distanciaKm": "10"
	}`
	rec := httptest.NewRecorder()
	h.CalcularComposicao(rec, httptest.NewRequest(http.MethodPost, "/eventos/composicao", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var tot Totais
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tot))
	requireDec(t, "300.00", tot.TotalPersonagens, "personagens")
	requireDec(t, "20.00", tot.TotalDeslocamento, "deslocamento")
	requireDec(t, "80.00", tot.TotalCaches, "caches")
	requireDec(t, "370.00", tot.ValorContratoProposto, "proposto")
}

func TestHandler_CalcularComposicaoErros(t *testing.T) {
	h := NewHandler(nil, fonteFixa{}, precosFixos{})

	rec := httptest.NewRecorder()
	h.CalcularComposicao(rec, httptest.NewRequest(http.MethodPost, "/eventos/composicao", strings.NewReader("{")))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.CalcularComposicao(rec, httptest.NewRequest(http.MethodPost, "/eventos/composicao",
		strings.NewReader(`{"despesas":[{"titulo":"","valor":10}]}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	h.Config = fonteFixa{err: errors.New("banco fora")}
	rec = httptest.NewRecorder()
	h.CalcularComposicao(rec, httptest.NewRequest(http.MethodPost, "/eventos/composicao", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEventoDTO_Validar(t *testing.T) {
	valido := eventoDTO{Nome: "Festa", ClienteID: 1, DataEvento: time.Now()}
	require.Empty(t, valido.validar())

	tests := []struct {
		nome string
		mut  func(*eventoDTO)
	}{
		{"sem nome", func(e *eventoDTO) { e.Nome = " " }},
		{"sem cliente", func(e *eventoDTO) { e.ClienteID = 0 }},
		{"sem data", func(e *eventoDTO) { e.DataEvento = time.Time{} }},
		{"status desconhecido", func(e *eventoDTO) { e.Status = "Adiado" }},
		{"método desconhecido", func(e *eventoDTO) { e.MetodoPagamento = "boleto" }},
		{"entrada negativa", func(e *eventoDTO) { e.ValorEntrada.Decimal = d("-1") }},
		{"cachê sem funcionário", func(e *eventoDTO) { e.Caches = []cacheDTO{{}} }},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			dto := valido
			tt.mut(&dto)
			require.NotEmpty(t, dto.validar())
		})
	}
}

func TestEventoDTO_ParaEvento(t *testing.T) {
	var dto eventoDTO
	body := `{
		"nome": " Festa ",
		"clienteId": 5,
		"dataEvento": "2026-05-10T15:00:00Z",
		"personagensIds": [3, 1, 3],
		"distanciaKm": "-4",
		"valorEntrada": "100,004",
		"metodoPagamento": "cartao_credito",
		"qtdParcelas": "-2"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &dto))

	ev := dto.paraEvento(dto.composicao(decimal.Zero))
	require.Equal(t, "Festa", ev.Nome)
	require.Equal(t, StatusOrcamento, ev.Status)
	require.Equal(t, []uint{1, 3}, ev.PersonagensIDs)
	require.True(t, ev.DistanciaKm.IsZero())
	requireDec(t, "100.00", ev.ValorEntrada, "entrada")
	require.Equal(t, 1, ev.QtdParcelas)
}

func TestHandler_IDInvalido(t *testing.T) {
	h := NewHandler(nil, fonteFixa{}, precosFixos{})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/eventos/abc", nil), map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/eventos/1/pagamentos/x", nil),
		map[string]string{"id": "1", "pagamentoId": "x"})
	rec = httptest.NewRecorder()
	h.RemoverPagamento(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

type avisosMemoria []notificacao.Aviso

func (a *avisosMemoria) Notificar(av notificacao.Aviso) { *a = append(*a, av) }

func TestHandler_Avisar(t *testing.T) {
	h := NewHandler(nil, fonteFixa{}, precosFixos{})
	ev := &Evento{ID: 4, Nome: "Festa Léo", DataEvento: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC), Status: StatusConfirmado}

	h.avisar("evento_criado", ev)

	var avs avisosMemoria
	h.Avisos = &avs
	h.avisar("evento_confirmado", ev)

	require.Len(t, avs, 1)
	require.Equal(t, "evento_confirmado", avs[0].Tipo)
	require.Equal(t, uint(4), avs[0].EventoID)
	require.Equal(t, "Festa Léo em 02/07/2026 (Confirmado)", avs[0].Mensagem)
}

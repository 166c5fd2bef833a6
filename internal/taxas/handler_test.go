package taxas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler_Consultar(t *testing.T) {
	h := NewHandler(&repoMemoria{cfg: Configuracao{Modo: ModoSumup}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/taxas?metodo=cartao_credito&parcelas=5", nil)
	h.Consultar(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var taxa Taxa
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&taxa))
	require.True(t, d("6.99").Equal(taxa.TaxaPercentual))
	require.True(t, d("2.10").Equal(taxa.JurosMensal))
	require.True(t, taxa.TemJurosParcelamento)
}

func TestHandler_ConsultarNaoConfigurado(t *testing.T) {
	h := NewHandler(&repoMemoria{cfg: Configuracao{Modo: ModoPersonalizado}})

	rec := httptest.NewRecorder()
	h.Consultar(rec, httptest.NewRequest(http.MethodGet, "/taxas?metodo=cartao_debito", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// pix nunca consulta a tabela, então não há o que configurar
	rec = httptest.NewRecorder()
	h.Consultar(rec, httptest.NewRequest(http.MethodGet, "/taxas?metodo=pix&parcelas=x", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_AtualizarConfiguracao(t *testing.T) {
	repo := &repoMemoria{}
	h := NewHandler(repo)

	body := `{"modo":"personalizado","personalizadas":{"debito":"1.2","creditoAVista":3,"creditoParcelado":"4.5"},"jurosMensalManual":"2","valorKm":"1.5"}`
	rec := httptest.NewRecorder()
	h.AtualizarConfiguracao(rec, httptest.NewRequest(http.MethodPut, "/configuracoes/taxas", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, repo.salvos)
	require.Equal(t, NaHora, repo.cfg.Recebimento)
	require.True(t, d("4.5").Equal(repo.cfg.Personalizadas.CreditoParcelado))
}

func TestHandler_AtualizarConfiguracaoInvalida(t *testing.T) {
	tests := map[string]string{
		"json":        `{`,
		"modo":        `{"modo":"outro"}`,
		"recebimento": `{"modo":"sumup","recebimento":"amanha"}`,
		"negativo":    `{"modo":"sumup","valorKm":"-1"}`,
		"expoente":    `{"modo":"sumup","valorKm":"1e90000000"}`,
		"juros":       `{"modo":"sumup","jurosMensalManual":"150"}`,
		"debito":      `{"modo":"personalizado","personalizadas":{"debito":"-1"}}`,
		"faixa":       `{"modo":"sumup","faixas":[{"nome":"A","debito":{"visa_master":"-0.5"}}]}`,
		"parcelado":   `{"modo":"sumup","faixas":[{"nome":"A","creditoParcelado":{"na_hora":"101"}}]}`,
		"selecionada": `{"modo":"sumup","faixaSelecionada":99}`,
		"fora":        `{"modo":"sumup","faixas":[{"nome":"A"}],"faixaSelecionada":1}`,
		"menos":       `{"modo":"sumup","faixaSelecionada":-1}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &repoMemoria{}
			rec := httptest.NewRecorder()
			NewHandler(repo).AtualizarConfiguracao(rec, httptest.NewRequest(http.MethodPut, "/configuracoes/taxas", strings.NewReader(body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Zero(t, repo.salvos)
		})
	}
}

func TestHandler_ObterConfiguracaoSumupSemFaixas(t *testing.T) {
	h := NewHandler(&repoMemoria{cfg: Configuracao{Modo: ModoSumup}})

	rec := httptest.NewRecorder()
	h.ObterConfiguracao(rec, httptest.NewRequest(http.MethodGet, "/configuracoes/taxas", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var cfg Configuracao
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cfg))
	require.Len(t, cfg.Faixas, len(FaixasPadrao))
}

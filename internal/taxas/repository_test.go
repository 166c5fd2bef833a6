package taxas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodificarDecodificar(t *testing.T) {
	cfg := configPersonalizada()
	cfg.Faixas = FaixasPadrao[:1]
	cfg.FaixaSelecionada = 2
	cfg.Recebimento = Em30Dias
	cfg.ValorKm = d("1.75")

	linhas, err := codificar(cfg)
	require.NoError(t, err)
	require.Len(t, linhas, 7)

	got, err := decodificar(linhas)
	require.NoError(t, err)
	require.Equal(t, ModoPersonalizado, got.Modo)
	require.NotNil(t, got.Personalizadas)
	require.True(t, d("4.8").Equal(got.Personalizadas.CreditoParcelado))
	require.True(t, d("1.99").Equal(got.JurosMensalManual))
	require.Len(t, got.Faixas, 1)
	require.True(t, d("5.49").Equal(got.Faixas[0].CreditoAVista[NaHora]))
	require.Equal(t, 2, got.FaixaSelecionada)
	require.Equal(t, Em30Dias, got.Recebimento)
	require.True(t, d("1.75").Equal(got.ValorKm))
}

func TestDecodificar_Vazio(t *testing.T) {
	cfg, err := decodificar(nil)
	require.NoError(t, err)
	require.Equal(t, ModoPersonalizado, cfg.Modo)
	require.Nil(t, cfg.Personalizadas)
	require.Equal(t, NaHora, cfg.Recebimento)
	require.True(t, cfg.ValorKm.IsZero())

	_, err = Resolver(cfg, Consulta{Metodo: CartaoCredito})
	require.ErrorIs(t, err, ErrNaoConfigurado)
}

func TestDecodificar_JSONInvalido(t *testing.T) {
	_, err := decodificar([]ConfiguracaoSistema{{Chave: chavePersonalizadas, Valor: "{"}})
	require.Error(t, err)
}

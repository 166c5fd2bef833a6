package parcelamento

import (
	"testing"

	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/stretchr/testify/require"
)

func TestSimular_SemTaxaParaPixEDinheiro(t *testing.T) {
	cfg := taxas.Configuracao{Modo: taxas.ModoSumup}
	for _, m := range []taxas.MetodoPagamento{taxas.Pix, taxas.Dinheiro} {
		cot := Simular(cfg, Simulacao{ValorContrato: d("1500"), ValorEntrada: d("500"), Metodo: m, Parcelas: 4})
		require.True(t, cot.Resultado.ValorTaxa.IsZero())
		requireDec(t, "1500", cot.Resultado.TotalFinal, "totalFinal")
		require.False(t, cot.TaxaNaoConfigurada)
	}
}

func TestSimular_NaoConfiguradoUsaTaxaZero(t *testing.T) {
	cot := Simular(taxas.Configuracao{}, Simulacao{ValorContrato: d("1000"), Metodo: taxas.CartaoCredito, Parcelas: 3})
	require.True(t, cot.TaxaNaoConfigurada)
	require.True(t, cot.Resultado.ValorTaxa.IsZero())
	requireDec(t, "333.33", cot.Resultado.ValorParcela, "valorParcela")
}

func TestSimular_SumupCreditoParcelado(t *testing.T) {
	cfg := taxas.Configuracao{Modo: taxas.ModoSumup}
	cot := Simular(cfg, Simulacao{ValorContrato: d("1200"), ValorEntrada: d("200"), Metodo: taxas.CartaoCredito, Parcelas: 5})

	require.True(t, cot.Taxa.TemJurosParcelamento)
	requireDec(t, "69.90", cot.Resultado.ValorTaxa, "valorTaxa")
	requireDec(t, "1069.90", cot.Resultado.ValorFinanciar, "valorFinanciar")
	require.True(t, cot.Resultado.ValorJuros.IsPositive())
	require.True(t, cot.Resultado.TotalFinal.Equal(d("200").Add(cot.Resultado.TotalFinanciado)))
}

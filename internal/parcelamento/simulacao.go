package parcelamento

import (
	"errors"

	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/shopspring/decimal"
)

// Simulacao descreve uma forma de pagamento sobre um valor de contrato.
type Simulacao struct {
	ValorContrato decimal.Decimal
	ValorEntrada  decimal.Decimal
	Metodo        taxas.MetodoPagamento
	Bandeira      taxas.Bandeira
	Parcelas      int
}

// Cotacao junta a taxa resolvida e o detalhamento calculado.
type Cotacao struct {
	Taxa               taxas.Taxa `json:"taxa"`
	Resultado          Resultado  `json:"resultado"`
	TaxaNaoConfigurada bool       `json:"taxaNaoConfigurada"`
}

// Simular resolve a taxa na configuração e calcula o parcelamento do saldo
// (contrato menos entrada). Taxas personalizadas não cadastradas contam como zero.
func Simular(cfg taxas.Configuracao, s Simulacao) Cotacao {
	parcelas := taxas.NormalizarParcelas(s.Parcelas)

	var cot Cotacao
	taxa, err := taxas.Resolver(cfg, taxas.Consulta{Metodo: s.Metodo, Bandeira: s.Bandeira, Parcelas: parcelas})
	if errors.Is(err, taxas.ErrNaoConfigurado) {
		cot.TaxaNaoConfigurada = true
		taxa = taxas.Taxa{}
	}
	cot.Taxa = taxa

	cot.Resultado = Calcular(Requisicao{
		SaldoRestante:        s.ValorContrato.Sub(s.ValorEntrada),
		ValorEntrada:         s.ValorEntrada,
		TaxaPercentual:       taxa.TaxaPercentual,
		JurosMensal:          taxa.JurosMensal,
		Parcelas:             parcelas,
		TemJurosParcelamento: taxa.TemJurosParcelamento,
	})
	return cot
}

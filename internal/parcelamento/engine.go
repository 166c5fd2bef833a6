package parcelamento

import (
	"github.com/shopspring/decimal"
)

var (
	cem = decimal.NewFromInt(100)
	um  = decimal.NewFromInt(1)
)

// Requisicao são as entradas do cálculo de parcelamento.
type Requisicao struct {
	SaldoRestante        decimal.Decimal
	ValorEntrada         decimal.Decimal
	TaxaPercentual       decimal.Decimal
	JurosMensal          decimal.Decimal
	Parcelas             int
	TemJurosParcelamento bool
}

// Resultado é o detalhamento do pagamento, com valores em centavos.
type Resultado struct {
	ValorTaxa       decimal.Decimal `json:"valorTaxa"`
	ValorFinanciar  decimal.Decimal `json:"valorFinanciar"`
	ValorParcela    decimal.Decimal `json:"valorParcela"`
	TotalFinanciado decimal.Decimal `json:"totalFinanciado"`
	ValorJuros      decimal.Decimal `json:"valorJuros"`
	TotalFinal      decimal.Decimal `json:"totalFinal"`
	Parcelas        int             `json:"parcelas"`
	ExibirDetalhes  bool            `json:"exibirDetalhes"`
}

// Calcular aplica a taxa da maquininha sobre o saldo e, no crédito parcelado
// com juros, calcula a parcela pela tabela Price. A taxa é repassada ao
// cliente (somada ao saldo). Mesmas entradas produzem sempre o mesmo resultado.
func Calcular(req Requisicao) Resultado {
	n := req.Parcelas
	if n < 1 {
		n = 1
	}
	entrada := decimal.Max(req.ValorEntrada, decimal.Zero)

	if req.SaldoRestante.LessThanOrEqual(decimal.Zero) {
		return Resultado{
			Parcelas:   n,
			TotalFinal: entrada.Round(2),
		}
	}

	saldo := req.SaldoRestante
	taxa := decimal.Max(req.TaxaPercentual, decimal.Zero)
	juros := decimal.Max(req.JurosMensal, decimal.Zero)

	valorTaxa := saldo.Mul(taxa).Div(cem)
	valorFinanciar := saldo.Add(valorTaxa)
	nDec := decimal.NewFromInt(int64(n))
	i := juros.Div(cem)

	var parcela, totalFinanciado, valorJuros decimal.Decimal
	if !req.TemJurosParcelamento || n <= 1 || !i.IsPositive() {
		parcela = valorFinanciar.Div(nDec).Round(2)
		totalFinanciado = valorFinanciar.Round(2)
		valorJuros = decimal.Zero
	} else {
		// PMT = V * i(1+i)^n / ((1+i)^n - 1)
		fator := um.Add(i).Pow(nDec)
		parcela = valorFinanciar.Mul(i.Mul(fator)).Div(fator.Sub(um)).Round(2)
		totalFinanciado = parcela.Mul(nDec)
		valorJuros = totalFinanciado.Sub(valorFinanciar.Round(2))
	}

	return Resultado{
		ValorTaxa:       valorTaxa.Round(2),
		ValorFinanciar:  valorFinanciar.Round(2),
		ValorParcela:    parcela,
		TotalFinanciado: totalFinanciado,
		ValorJuros:      valorJuros,
		TotalFinal:      entrada.Add(totalFinanciado).Round(2),
		Parcelas:        n,
		ExibirDetalhes:  true,
	}
}

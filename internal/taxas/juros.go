package taxas

import "github.com/shopspring/decimal"

// tabelaJuros guarda o juro mensal (%) por quantidade de parcelas no modo sumup.
var tabelaJuros = map[int]decimal.Decimal{
	1:  pct("0.00"),
	2:  pct("0.53"),
	3:  pct("1.05"),
	4:  pct("1.58"),
	5:  pct("2.10"),
	6:  pct("2.24"),
	7:  pct("2.39"),
	8:  pct("2.53"),
	9:  pct("2.68"),
	10: pct("2.82"),
	11: pct("2.96"),
	12: pct("3.11"),
}

// JurosPorParcelas devolve o juro mensal da tabela. Acima de 12 parcelas
// extrapola linearmente a partir da 12ª usando a inclinação entre 5 e 10.
// TODO: validar a extrapolação acima de 12x contra a tabela publicada da adquirente.
func JurosPorParcelas(parcelas int) decimal.Decimal {
	parcelas = NormalizarParcelas(parcelas)
	if j, ok := tabelaJuros[parcelas]; ok {
		return j
	}

	inclinacao := tabelaJuros[10].Sub(tabelaJuros[5]).Div(decimal.NewFromInt(5))
	return tabelaJuros[12].Add(inclinacao.Mul(decimal.NewFromInt(int64(parcelas - 12))))
}

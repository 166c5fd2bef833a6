package taxas

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizarParcelas garante no mínimo uma parcela.
func NormalizarParcelas(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ParseParcelas interpreta a quantidade de parcelas vinda de query string ou
// formulário. Valores vazios, negativos ou não numéricos viram 1.
func ParseParcelas(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return NormalizarParcelas(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 && f < 1e6 {
		return int(f)
	}
	return 1
}

// Resolver encontra a taxa e o juro mensal aplicáveis a uma forma de pagamento.
// Só cartões têm taxa; dinheiro e pix retornam zero sem consultar a tabela.
func Resolver(cfg Configuracao, c Consulta) (Taxa, error) {
	if c.Metodo != CartaoCredito && c.Metodo != CartaoDebito {
		return Taxa{}, nil
	}
	parcelas := NormalizarParcelas(c.Parcelas)

	var taxa Taxa
	switch cfg.Modo {
	case ModoSumup:
		faixa := cfg.faixa()
		if c.Metodo == CartaoDebito {
			b := c.Bandeira
			if b != VisaMaster {
				b = Outros
			}
			taxa.TaxaPercentual = faixa.Debito[b]
		} else if parcelas > 1 {
			taxa.TaxaPercentual = faixa.CreditoParcelado[cfg.recebimento()]
		} else {
			taxa.TaxaPercentual = faixa.CreditoAVista[cfg.recebimento()]
		}
		taxa.JurosMensal = JurosPorParcelas(parcelas)

	default:
		p := cfg.Personalizadas
		if p == nil {
			return Taxa{}, ErrNaoConfigurado
		}
		switch {
		case c.Metodo == CartaoDebito:
			taxa.TaxaPercentual = p.Debito
		case parcelas > 1:
			taxa.TaxaPercentual = p.CreditoParcelado
		default:
			taxa.TaxaPercentual = p.CreditoAVista
		}
		taxa.JurosMensal = cfg.JurosMensalManual
	}

	taxa.TemJurosParcelamento = c.Metodo == CartaoCredito &&
		parcelas > 1 &&
		taxa.JurosMensal.GreaterThan(decimal.Zero)
	return taxa, nil
}

// faixa devolve a faixa selecionada, caindo na primeira quando o índice é inválido.
func (c Configuracao) faixa() FaixaSumup {
	faixas := c.Faixas
	if len(faixas) == 0 {
		faixas = FaixasPadrao
	}
	if c.FaixaSelecionada < 0 || c.FaixaSelecionada >= len(faixas) {
		return faixas[0]
	}
	return faixas[c.FaixaSelecionada]
}

func (c Configuracao) recebimento() Recebimento {
	if c.Recebimento == Em30Dias {
		return Em30Dias
	}
	return NaHora
}

// QtdParcelas aceita número ou texto no JSON e nunca falha: valor inválido vira 1.
type QtdParcelas int

func (q *QtdParcelas) UnmarshalJSON(b []byte) error {
	*q = QtdParcelas(ParseParcelas(strings.Trim(string(b), `"`)))
	return nil
}

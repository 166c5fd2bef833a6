package utils

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseValor converte um valor monetário digitado pelo usuário em decimal.
// Aceita "1234.5", "1.234,56", "R$ 50,00". Entrada inválida vira zero.
func ParseValor(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return decimal.Zero
		}
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		// 1.234.567
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return limitar(d)
}

// limiteValor é o maior valor absoluto aceito para um campo monetário.
var limiteValor = decimal.New(1, 12)

// ForaDaFaixa informa se d tem expoente ou magnitude fora da faixa monetária.
// O expoente é conferido antes de qualquer comparação, que reescalaria o número.
func ForaDaFaixa(d decimal.Decimal) bool {
	if e := d.Exponent(); e < -12 || e > 15 {
		return true
	}
	return d.Abs().GreaterThan(limiteValor)
}

func limitar(d decimal.Decimal) decimal.Decimal {
	if ForaDaFaixa(d) {
		return decimal.Zero
	}
	return d
}

// Arredondar arredonda para centavos.
func Arredondar(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Valor é um campo monetário de DTO que aceita tanto número quanto texto
// ("valor": 10.5 ou "valor": "10,50"). Texto inválido vira zero.
type Valor struct {
	decimal.Decimal
}

func NovoValor(d decimal.Decimal) Valor {
	return Valor{Decimal: d}
}

func (v *Valor) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		v.Decimal = decimal.Zero
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v.Decimal = ParseValor(s)
		return nil
	}

	d, err := decimal.NewFromString(string(b))
	if err != nil {
		v.Decimal = decimal.Zero
		return nil
	}
	v.Decimal = limitar(d)
	return nil
}

func (v Valor) MarshalJSON() ([]byte, error) {
	return v.Decimal.MarshalJSON()
}

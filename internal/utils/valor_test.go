package utils

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseValor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"   ", "0"},
		{"50", "50"},
		{"50.5", "50.5"},
		{"50,5", "50.5"},
		{"R$ 1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1.234.567", "1234567"},
		{"abc", "0"},
		{"12,3,4", "0"},
		{"-10", "-10"},
		{"1e90000000", "0"},
		{"1e-90000000", "0"},
		{"2000000000000", "0"},
		{"1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseValor(tt.in)
			require.True(t, decimal.RequireFromString(tt.want).Equal(got), "ParseValor(%q) = %s", tt.in, got)
		})
	}
}

func TestValor_UnmarshalJSON(t *testing.T) {
	var body struct {
		A Valor `json:"a"`
		B Valor `json:"b"`
		C Valor `json:"c"`
		D Valor `json:"d"`
		E Valor `json:"e"`
		F Valor `json:"f"`
	}
	err := json.Unmarshal([]byte(`{"a": 10.25, "b": "R$ 3,50", "c": "xyz", "d": null, "e": 1e90000000, "f": "1e90000000"}`), &body)
	require.NoError(t, err)

	require.Equal(t, "10.25", body.A.String())
	require.Equal(t, "3.5", body.B.String())
	require.True(t, body.C.IsZero())
	require.True(t, body.D.IsZero())
	require.True(t, body.E.IsZero())
	require.LessOrEqual(t, body.E.Exponent(), int32(15))
	require.True(t, body.F.IsZero())
	require.LessOrEqual(t, body.F.Exponent(), int32(15))
}

func TestSenha(t *testing.T) {
	senha, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	require.Len(t, senha, 12)

	hash, err := HashSenha(senha)
	require.NoError(t, err)
	require.True(t, VerificarSenha(hash, senha))
	require.False(t, VerificarSenha(hash, senha+"x"))
}

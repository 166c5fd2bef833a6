package taxas

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func configPersonalizada() Configuracao {
	return Configuracao{
		Modo: ModoPersonalizado,
		Personalizadas: &TaxasPersonalizadas{
			Debito:           d("1.5"),
			CreditoAVista:    d("3.2"),
			CreditoParcelado: d("4.8"),
		},
		JurosMensalManual: d("1.99"),
	}
}

func TestResolver_SemTaxaParaDinheiroEPix(t *testing.T) {
	for _, m := range []MetodoPagamento{Dinheiro, Pix, ""} {
		for _, cfg := range []Configuracao{configPersonalizada(), {Modo: ModoSumup}, {}} {
			taxa, err := Resolver(cfg, Consulta{Metodo: m, Parcelas: 6})
			require.NoError(t, err, "método %q não deve consultar a tabela", m)
			require.True(t, taxa.TaxaPercentual.IsZero())
			require.True(t, taxa.JurosMensal.IsZero())
			require.False(t, taxa.TemJurosParcelamento)
		}
	}
}

func TestResolver_Personalizado(t *testing.T) {
	cfg := configPersonalizada()

	tests := []struct {
		name     string
		consulta Consulta
		taxa     string
		temJuros bool
	}{
		{"débito", Consulta{Metodo: CartaoDebito, Bandeira: Outros, Parcelas: 1}, "1.5", false},
		{"débito ignora parcelas", Consulta{Metodo: CartaoDebito, Parcelas: 3}, "1.5", false},
		{"crédito à vista", Consulta{Metodo: CartaoCredito, Parcelas: 1}, "3.2", false},
		{"crédito parcelas inválidas", Consulta{Metodo: CartaoCredito, Parcelas: -4}, "3.2", false},
		{"crédito parcelado", Consulta{Metodo: CartaoCredito, Parcelas: 4}, "4.8", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taxa, err := Resolver(cfg, tt.consulta)
			require.NoError(t, err)
			require.True(t, d(tt.taxa).Equal(taxa.TaxaPercentual), "taxa = %s", taxa.TaxaPercentual)
			require.True(t, d("1.99").Equal(taxa.JurosMensal))
			require.Equal(t, tt.temJuros, taxa.TemJurosParcelamento)
		})
	}
}

func TestResolver_PersonalizadoSemJuros(t *testing.T) {
	cfg := configPersonalizada()
	cfg.JurosMensalManual = decimal.Zero

	taxa, err := Resolver(cfg, Consulta{Metodo: CartaoCredito, Parcelas: 10})
	require.NoError(t, err)
	require.False(t, taxa.TemJurosParcelamento)
}

func TestResolver_PersonalizadoNaoConfigurado(t *testing.T) {
	_, err := Resolver(Configuracao{Modo: ModoPersonalizado}, Consulta{Metodo: CartaoCredito, Parcelas: 2})
	require.ErrorIs(t, err, ErrNaoConfigurado)

	// modo desconhecido se comporta como personalizado
	_, err = Resolver(Configuracao{Modo: "outro"}, Consulta{Metodo: CartaoDebito})
	require.ErrorIs(t, err, ErrNaoConfigurado)
}

func TestResolver_Sumup(t *testing.T) {
	cfg := Configuracao{Modo: ModoSumup, FaixaSelecionada: 1, Recebimento: Em30Dias}

	taxa, err := Resolver(cfg, Consulta{Metodo: CartaoDebito, Bandeira: VisaMaster})
	require.NoError(t, err)
	require.True(t, d("1.69").Equal(taxa.TaxaPercentual))
	require.False(t, taxa.TemJurosParcelamento)

	taxa, err = Resolver(cfg, Consulta{Metodo: CartaoDebito, Bandeira: "elo"})
	require.NoError(t, err)
	require.True(t, d("2.09").Equal(taxa.TaxaPercentual), "bandeira desconhecida usa 'outros'")

	taxa, err = Resolver(cfg, Consulta{Metodo: CartaoCredito, Parcelas: 1})
	require.NoError(t, err)
	require.True(t, d("3.29").Equal(taxa.TaxaPercentual))
	require.True(t, taxa.JurosMensal.IsZero())
	require.False(t, taxa.TemJurosParcelamento)

	taxa, err = Resolver(cfg, Consulta{Metodo: CartaoCredito, Parcelas: 5})
	require.NoError(t, err)
	require.True(t, d("4.89").Equal(taxa.TaxaPercentual))
	require.True(t, d("2.10").Equal(taxa.JurosMensal))
	require.True(t, taxa.TemJurosParcelamento)
}

func TestResolver_SumupFaixaInvalidaUsaPrimeira(t *testing.T) {
	faixas := []FaixaSumup{{
		Nome:          "única",
		CreditoAVista: map[Recebimento]decimal.Decimal{NaHora: d("4.00")},
	}}
	cfg := Configuracao{Modo: ModoSumup, Faixas: faixas, FaixaSelecionada: 7}

	taxa, err := Resolver(cfg, Consulta{Metodo: CartaoCredito, Parcelas: 1})
	require.NoError(t, err)
	require.True(t, d("4.00").Equal(taxa.TaxaPercentual))
}

func TestJurosPorParcelas(t *testing.T) {
	tests := []struct {
		parcelas int
		want     string
	}{
		{0, "0"},
		{1, "0"},
		{2, "0.53"},
		{5, "2.10"},
		{12, "3.11"},
		{13, "3.254"},
		{18, "3.974"},
	}
	for _, tt := range tests {
		got := JurosPorParcelas(tt.parcelas)
		require.True(t, d(tt.want).Equal(got), "JurosPorParcelas(%d) = %s", tt.parcelas, got)
	}
}

func TestParseParcelas(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"abc":  1,
		"-3":   1,
		"0":    1,
		"4":    4,
		" 12 ": 12,
		"6.0":  6,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseParcelas(in), "ParseParcelas(%q)", in)
	}
}

func TestQtdParcelas_UnmarshalJSON(t *testing.T) {
	var body struct {
		A QtdParcelas `json:"a"`
		B QtdParcelas `json:"b"`
		C QtdParcelas `json:"c"`
		D QtdParcelas `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 6, "b": "3", "c": "dez", "d": -2}`), &body))
	require.Equal(t, QtdParcelas(6), body.A)
	require.Equal(t, QtdParcelas(3), body.B)
	require.Equal(t, QtdParcelas(1), body.C)
	require.Equal(t, QtdParcelas(1), body.D)
}

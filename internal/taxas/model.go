package taxas

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNaoConfigurado indica que o modo personalizado está ativo mas nenhuma
// taxa foi cadastrada. Quem chama deve assumir taxa zero.
var ErrNaoConfigurado = errors.New("taxas personalizadas não configuradas")

type MetodoPagamento string

const (
	Dinheiro      MetodoPagamento = "dinheiro"
	Pix           MetodoPagamento = "pix"
	CartaoCredito MetodoPagamento = "cartao_credito"
	CartaoDebito  MetodoPagamento = "cartao_debito"
)

// Valido informa se m é um dos métodos de pagamento aceitos.
func (m MetodoPagamento) Valido() bool {
	switch m {
	case Dinheiro, Pix, CartaoCredito, CartaoDebito:
		return true
	}
	return false
}

// Bandeira só é relevante no débito.
type Bandeira string

const (
	VisaMaster Bandeira = "visa_master"
	Outros     Bandeira = "outros"
)

// Recebimento é a velocidade de liquidação contratada na maquininha.
type Recebimento string

const (
	NaHora   Recebimento = "na_hora"
	Em30Dias Recebimento = "em_30_dias"
)

type Modo string

const (
	ModoPersonalizado Modo = "personalizado"
	ModoSumup         Modo = "sumup"
)

// TaxasPersonalizadas são os percentuais fixos do modo personalizado.
type TaxasPersonalizadas struct {
	Debito           decimal.Decimal `json:"debito"`
	CreditoAVista    decimal.Decimal `json:"creditoAVista"`
	CreditoParcelado decimal.Decimal `json:"creditoParcelado"`
}

// FaixaSumup é uma faixa de faturamento da tabela escalonada.
type FaixaSumup struct {
	Nome             string                          `json:"nome"`
	Debito           map[Bandeira]decimal.Decimal    `json:"debito"`
	CreditoAVista    map[Recebimento]decimal.Decimal `json:"creditoAVista"`
	CreditoParcelado map[Recebimento]decimal.Decimal `json:"creditoParcelado"`
}

// Configuracao é o retrato das configurações financeiras do sistema,
// carregado uma vez por cálculo.
type Configuracao struct {
	Modo              Modo                 `json:"modo"`
	Personalizadas    *TaxasPersonalizadas `json:"personalizadas,omitempty"`
	JurosMensalManual decimal.Decimal      `json:"jurosMensalManual"`
	Faixas            []FaixaSumup         `json:"faixas,omitempty"`
	FaixaSelecionada  int                  `json:"faixaSelecionada"`
	Recebimento       Recebimento          `json:"recebimento"`
	ValorKm           decimal.Decimal      `json:"valorKm"`
}

// Consulta é a entrada do provedor de taxas.
type Consulta struct {
	Metodo   MetodoPagamento
	Bandeira Bandeira
	Parcelas int
}

// Taxa é o resultado da consulta.
type Taxa struct {
	TaxaPercentual       decimal.Decimal `json:"taxaPercentual"`
	JurosMensal          decimal.Decimal `json:"jurosMensal"`
	TemJurosParcelamento bool            `json:"temJurosParcelamento"`
}

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// FaixasPadrao é usada quando o modo sumup está ativo sem faixas cadastradas.
var FaixasPadrao = []FaixaSumup{
	{
		Nome:             "Até R$ 5 mil/mês",
		Debito:           map[Bandeira]decimal.Decimal{VisaMaster: pct("1.99"), Outros: pct("2.39")},
		CreditoAVista:    map[Recebimento]decimal.Decimal{NaHora: pct("5.49"), Em30Dias: pct("3.79")},
		CreditoParcelado: map[Recebimento]decimal.Decimal{NaHora: pct("6.99"), Em30Dias: pct("5.39")},
	},
	{
		Nome:             "De R$ 5 mil a R$ 20 mil/mês",
		Debito:           map[Bandeira]decimal.Decimal{VisaMaster: pct("1.69"), Outros: pct("2.09")},
		CreditoAVista:    map[Recebimento]decimal.Decimal{NaHora: pct("4.79"), Em30Dias: pct("3.29")},
		CreditoParcelado: map[Recebimento]decimal.Decimal{NaHora: pct("6.29"), Em30Dias: pct("4.89")},
	},
	{
		Nome:             "Acima de R$ 20 mil/mês",
		Debito:           map[Bandeira]decimal.Decimal{VisaMaster: pct("1.39"), Outros: pct("1.79")},
		CreditoAVista:    map[Recebimento]decimal.Decimal{NaHora: pct("3.99"), Em30Dias: pct("2.79")},
		CreditoParcelado: map[Recebimento]decimal.Decimal{NaHora: pct("5.59"), Em30Dias: pct("4.39")},
	},
}

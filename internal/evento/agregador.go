package evento

import (
	"errors"
	"sort"
	"strings"

	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/shopspring/decimal"
)

var ErrDespesaInvalida = errors.New("despesa precisa de título e valor positivo")

// Despesa é uma linha de gasto avulso na composição.
type Despesa struct {
	Titulo    string
	Valor     decimal.Decimal
	Descricao string
}

// NovaDespesa valida os campos digitados antes da inclusão.
func NovaDespesa(titulo, valor, descricao string) (Despesa, error) {
	v := utils.ParseValor(valor)
	if strings.TrimSpace(titulo) == "" || !v.IsPositive() {
		return Despesa{}, ErrDespesaInvalida
	}
	return Despesa{Titulo: strings.TrimSpace(titulo), Valor: v, Descricao: descricao}, nil
}

// Cache é o cachê de um funcionário escalado, opcionalmente ligado a um personagem.
type Cache struct {
	FuncionarioID uint
	PersonagemID  *uint
	ValorCache    decimal.Decimal
}

// Composicao reúne as três coleções editadas no formulário do evento
// (personagens, despesas e cachês) e o deslocamento.
type Composicao struct {
	personagens map[uint]struct{}
	Despesas    []Despesa
	Caches      []Cache
	DistanciaKm decimal.Decimal
	ValorKm     decimal.Decimal
}

func NovaComposicao(valorKm decimal.Decimal) *Composicao {
	return &Composicao{personagens: map[uint]struct{}{}, ValorKm: valorKm}
}

// AdicionarPersonagem inclui o id na seleção; repetir o id não muda nada.
func (c *Composicao) AdicionarPersonagem(id uint) {
	if c.personagens == nil {
		c.personagens = map[uint]struct{}{}
	}
	c.personagens[id] = struct{}{}
}

func (c *Composicao) RemoverPersonagem(id uint) {
	delete(c.personagens, id)
}

// AlternarPersonagem inclui ou remove, como o clique no card do formulário.
func (c *Composicao) AlternarPersonagem(id uint) {
	if _, ok := c.personagens[id]; ok {
		c.RemoverPersonagem(id)
		return
	}
	c.AdicionarPersonagem(id)
}

// Personagens devolve os ids selecionados em ordem crescente.
func (c *Composicao) Personagens() []uint {
	ids := make([]uint, 0, len(c.personagens))
	for id := range c.personagens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefinirDistancia aceita o texto do campo; vazio, inválido ou negativo vira zero.
func (c *Composicao) DefinirDistancia(km string) {
	c.DistanciaKm = decimal.Max(utils.ParseValor(km), decimal.Zero)
}

// Totais é o detalhamento de custos do evento.
type Totais struct {
	TotalPersonagens      decimal.Decimal `json:"totalPersonagens"`
	TotalDespesas         decimal.Decimal `json:"totalDespesas"`
	TotalDeslocamento     decimal.Decimal `json:"totalDeslocamento"`
	TotalCaches           decimal.Decimal `json:"totalCaches"`
	ValorContratoProposto decimal.Decimal `json:"valorContratoProposto"`
}

// Totais soma a composição. precos traz o preço de venda de cada personagem;
// ids sem preço contam como zero. Os cachês são custo interno e ficam fora
// do valor proposto ao cliente.
func (c *Composicao) Totais(precos map[uint]decimal.Decimal) Totais {
	var t Totais
	for id := range c.personagens {
		t.TotalPersonagens = t.TotalPersonagens.Add(precos[id])
	}
	for _, d := range c.Despesas {
		t.TotalDespesas = t.TotalDespesas.Add(d.Valor)
	}
	for _, ch := range c.Caches {
		t.TotalCaches = t.TotalCaches.Add(ch.ValorCache)
	}
	t.TotalDeslocamento = decimal.Max(c.DistanciaKm, decimal.Zero).Mul(c.ValorKm).Round(2)

	t.ValorContratoProposto = t.TotalPersonagens.
		Add(t.TotalDespesas).
		Add(t.TotalDeslocamento).
		Round(2)
	return t
}

// DefinirValorContrato decide o valor do contrato gravado.
//   - recalcular força o valor proposto;
//   - um valor informado pelo usuário (> 0) sempre vence;
//   - na edição, um valor já gravado (> 0) é mantido, para não sobrescrever
//     ajustes manuais da equipe;
//   - nos demais casos usa o proposto.
func DefinirValorContrato(editando bool, atual, informado, proposto decimal.Decimal, recalcular bool) decimal.Decimal {
	switch {
	case recalcular:
		return proposto
	case informado.IsPositive():
		return informado
	case editando && atual.IsPositive():
		return atual
	default:
		return proposto
	}
}

// ResumoPagamentos é a posição de pagamentos registrados do evento.
type ResumoPagamentos struct {
	TotalPago decimal.Decimal `json:"totalPago"`
	Pendente  decimal.Decimal `json:"pendente"`
}

// ResumirPagamentos soma a entrada e os pagamentos parciais. O pendente nunca é negativo.
func ResumirPagamentos(contrato, entrada decimal.Decimal, pagamentos []PagamentoEvento) ResumoPagamentos {
	pago := entrada
	for _, p := range pagamentos {
		pago = pago.Add(p.Valor)
	}
	return ResumoPagamentos{
		TotalPago: pago.Round(2),
		Pendente:  decimal.Max(contrato.Sub(pago), decimal.Zero).Round(2),
	}
}

// ComposicaoDoEvento reconstrói a composição a partir do que foi gravado.
func ComposicaoDoEvento(ev *Evento, valorKm decimal.Decimal) *Composicao {
	c := NovaComposicao(valorKm)
	for _, id := range ev.PersonagensIDs {
		c.AdicionarPersonagem(id)
	}
	for _, d := range ev.Despesas {
		c.Despesas = append(c.Despesas, Despesa{Titulo: d.Titulo, Valor: d.Valor, Descricao: d.Descricao})
	}
	for _, ch := range ev.Caches {
		c.Caches = append(c.Caches, Cache{FuncionarioID: ch.FuncionarioID, PersonagemID: ch.PersonagemID, ValorCache: ch.ValorCache})
	}
	c.DistanciaKm = ev.DistanciaKm
	return c
}

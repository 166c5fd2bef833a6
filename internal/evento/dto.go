package evento

import (
	"strings"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/parcelamento"
	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/shopspring/decimal"
)

type despesaDTO struct {
	Titulo    string      `json:"titulo"`
	Valor     utils.Valor `json:"valor"`
	Descricao string      `json:"descricao"`
}

type cacheDTO struct {
	FuncionarioID uint        `json:"funcionarioId"`
	PersonagemID  *uint       `json:"personagemId"`
	ValorCache    utils.Valor `json:"valorCache"`
}

// composicaoDTO é o que basta para calcular o valor proposto.
type composicaoDTO struct {
	PersonagensIDs []uint       `json:"personagensIds"`
	Despesas       []despesaDTO `json:"despesas"`
	Caches         []cacheDTO   `json:"caches"`
	DistanciaKm    utils.Valor  `json:"distanciaKm"`
}

func (dto composicaoDTO) validar() string {
	for _, d := range dto.Despesas {
		if strings.TrimSpace(d.Titulo) == "" || !d.Valor.IsPositive() {
			return "Cada despesa precisa de título e valor maior que zero"
		}
	}
	for _, c := range dto.Caches {
		if c.FuncionarioID == 0 {
			return "Cada cachê precisa de um funcionário"
		}
		if c.ValorCache.IsNegative() {
			return "O valor do cachê não pode ser negativo"
		}
	}
	return ""
}

func (dto composicaoDTO) composicao(valorKm decimal.Decimal) *Composicao {
	c := NovaComposicao(valorKm)
	for _, id := range dto.PersonagensIDs {
		c.AdicionarPersonagem(id)
	}
	for _, d := range dto.Despesas {
		c.Despesas = append(c.Despesas, Despesa{Titulo: strings.TrimSpace(d.Titulo), Valor: d.Valor.Decimal, Descricao: d.Descricao})
	}
	for _, ch := range dto.Caches {
		c.Caches = append(c.Caches, Cache{FuncionarioID: ch.FuncionarioID, PersonagemID: ch.PersonagemID, ValorCache: ch.ValorCache.Decimal})
	}
	c.DistanciaKm = decimal.Max(dto.DistanciaKm.Decimal, decimal.Zero)
	return c
}

// DTO usado no POST e no PUT /eventos
type eventoDTO struct {
	composicaoDTO

	Nome        string    `json:"nome"`
	ClienteID   uint      `json:"clienteId"`
	BuffetID    *uint     `json:"buffetId"`
	DataEvento  time.Time `json:"dataEvento"`
	HoraInicio  string    `json:"horaInicio"`
	HoraFim     string    `json:"horaFim"`
	Local       string    `json:"local"`
	Endereco    string    `json:"endereco"`
	Status      string    `json:"status"`
	Observacoes string    `json:"observacoes"`

	ValorContrato   utils.Valor           `json:"valorContrato"`
	ValorEntrada    utils.Valor           `json:"valorEntrada"`
	MetodoPagamento taxas.MetodoPagamento `json:"metodoPagamento"`
	Bandeira        taxas.Bandeira        `json:"bandeira"`
	QtdParcelas     taxas.QtdParcelas     `json:"qtdParcelas"`

	// RecalcularValor descarta o valor gravado e usa o proposto.
	RecalcularValor bool `json:"recalcularValor"`
}

var statusValidos = map[string]bool{
	StatusOrcamento:  true,
	StatusConfirmado: true,
	StatusRealizado:  true,
	StatusCancelado:  true,
}

func (dto eventoDTO) validar() string {
	switch {
	case strings.TrimSpace(dto.Nome) == "":
		return "O campo 'nome' é obrigatório"
	case dto.ClienteID == 0:
		return "O campo 'clienteId' é obrigatório"
	case dto.DataEvento.IsZero():
		return "O campo 'dataEvento' é obrigatório"
	case dto.Status != "" && !statusValidos[dto.Status]:
		return "Status inválido"
	case dto.MetodoPagamento != "" && !dto.MetodoPagamento.Valido():
		return "Método de pagamento inválido"
	case dto.ValorContrato.IsNegative() || dto.ValorEntrada.IsNegative():
		return "Valores não podem ser negativos"
	}
	return dto.composicaoDTO.validar()
}

// paraEvento copia os campos do formulário; o valor do contrato é decidido por quem chama.
func (dto eventoDTO) paraEvento(comp *Composicao) *Evento {
	status := dto.Status
	if status == "" {
		status = StatusOrcamento
	}
	metodo := dto.MetodoPagamento
	if metodo == "" {
		metodo = taxas.Pix
	}

	ev := &Evento{
		Nome:            strings.TrimSpace(dto.Nome),
		ClienteID:       dto.ClienteID,
		BuffetID:        dto.BuffetID,
		DataEvento:      dto.DataEvento,
		HoraInicio:      dto.HoraInicio,
		HoraFim:         dto.HoraFim,
		Local:           dto.Local,
		Endereco:        dto.Endereco,
		Status:          status,
		Observacoes:     dto.Observacoes,
		PersonagensIDs:  comp.Personagens(),
		DistanciaKm:     comp.DistanciaKm.Round(2),
		ValorEntrada:    utils.Arredondar(dto.ValorEntrada.Decimal),
		MetodoPagamento: string(metodo),
		Bandeira:        string(dto.Bandeira),
		QtdParcelas:     taxas.NormalizarParcelas(int(dto.QtdParcelas)),
	}
	for _, d := range comp.Despesas {
		ev.Despesas = append(ev.Despesas, DespesaEvento{Titulo: d.Titulo, Valor: utils.Arredondar(d.Valor), Descricao: d.Descricao})
	}
	for _, c := range comp.Caches {
		ev.Caches = append(ev.Caches, CacheFuncionario{FuncionarioID: c.FuncionarioID, PersonagemID: c.PersonagemID, ValorCache: utils.Arredondar(c.ValorCache)})
	}
	return ev
}

type pagamentoDTO struct {
	Valor           utils.Valor `json:"valor"`
	DataPagamento   time.Time   `json:"dataPagamento"`
	MetodoPagamento string      `json:"metodoPagamento"`
}

// EventoResposta acompanha o evento com o detalhamento financeiro.
type EventoResposta struct {
	Evento     *Evento              `json:"evento"`
	Totais     Totais               `json:"totais"`
	Cotacao    parcelamento.Cotacao `json:"cotacao"`
	Pagamentos ResumoPagamentos     `json:"pagamentos"`
}

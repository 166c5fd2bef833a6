package evento

import (
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/financeiro"
	"github.com/BolzoniProducoes/api-gestao/internal/parcelamento"
	"github.com/shopspring/decimal"
)

// Lancamentos monta as contas do evento: a entrada a receber, uma conta a
// receber por parcela (vencendo mês a mês a partir da data do evento) e uma
// conta a pagar por cachê. A última parcela absorve a diferença de centavos
// para que a soma bata com o total financiado.
func Lancamentos(ev *Evento, res parcelamento.Resultado, hoje time.Time) []financeiro.Transacao {
	return lancamentosEmAberto(ev, res, hoje, nil)
}

// quitado resume o que já foi pago entre os lançamentos de um evento.
type quitado struct {
	recebido    decimal.Decimal
	recebidas   int
	porCacheiro map[uint]decimal.Decimal
}

func somarPagos(existentes []financeiro.Transacao) quitado {
	q := quitado{recebido: decimal.Zero, porCacheiro: map[uint]decimal.Decimal{}}
	for _, t := range existentes {
		if t.Status != financeiro.StatusPago {
			continue
		}
		switch {
		case t.Tipo == financeiro.TipoReceber:
			q.recebido = q.recebido.Add(t.Valor)
			q.recebidas++
		case t.Tipo == financeiro.TipoPagar && t.FuncionarioID != nil:
			fid := *t.FuncionarioID
			q.porCacheiro[fid] = q.porCacheiro[fid].Add(t.Valor)
		}
	}
	return q
}

// lancamentosEmAberto gera as contas do evento descontando o que já foi pago.
// O valor recebido quita primeiro a entrada e depois as parcelas; as parcelas
// restantes continuam a numeração das pagas e dividem o saldo do financiamento.
// Cachês pagos são descontados por funcionário.
func lancamentosEmAberto(ev *Evento, res parcelamento.Resultado, hoje time.Time, existentes []financeiro.Transacao) []financeiro.Transacao {
	q := somarPagos(existentes)
	var ts []financeiro.Transacao
	id := ev.ID

	if entrada := ev.ValorEntrada.Round(2); entrada.IsPositive() {
		if q.recebido.GreaterThanOrEqual(entrada) {
			q.recebido = q.recebido.Sub(entrada)
			q.recebidas--
		} else {
			eid := id
			ts = append(ts, financeiro.Transacao{
				Tipo:            financeiro.TipoReceber,
				Descricao:       "Entrada - " + ev.Nome,
				Valor:           entrada.Sub(q.recebido),
				DataVencimento:  hoje,
				Status:          financeiro.StatusPendente,
				MetodoPagamento: ev.MetodoPagamento,
				EventoID:        &eid,
			})
			q.recebido, q.recebidas = decimal.Zero, 0
		}
	}

	if res.ExibirDetalhes && res.Parcelas > 0 {
		pagas := min(max(q.recebidas, 0), res.Parcelas-1)
		valores := financeiro.DividirEmParcelas(res.TotalFinanciado.Sub(q.recebido), res.Parcelas-pagas)
		ts = append(ts, financeiro.GerarParcelas(id, "Evento - "+ev.Nome, valores,
			pagas+1, pagas+len(valores), ev.DataEvento, ev.MetodoPagamento)...)
	}

	for _, c := range ev.Caches {
		valor := c.ValorCache.Round(2)
		if !valor.IsPositive() {
			continue
		}
		if pago, ok := q.porCacheiro[c.FuncionarioID]; ok {
			abatido := decimal.Min(pago, valor)
			q.porCacheiro[c.FuncionarioID] = pago.Sub(abatido)
			if valor = valor.Sub(abatido); !valor.IsPositive() {
				continue
			}
		}
		eid, fid := id, c.FuncionarioID
		ts = append(ts, financeiro.Transacao{
			Tipo:           financeiro.TipoPagar,
			Descricao:      "Cachê - " + ev.Nome,
			Valor:          valor,
			DataVencimento: ev.DataEvento,
			Status:         financeiro.StatusPendente,
			EventoID:       &eid,
			FuncionarioID:  &fid,
		})
	}
	return ts
}

// internal/evento/handler.go
package evento

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/financeiro"
	"github.com/BolzoniProducoes/api-gestao/internal/metrics"
	"github.com/BolzoniProducoes/api-gestao/internal/notificacao"
	"github.com/BolzoniProducoes/api-gestao/internal/parcelamento"
	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FontePrecos devolve o preço de venda dos personagens pedidos.
type FontePrecos interface {
	PrecosVenda(ctx context.Context, ids []uint) (map[uint]decimal.Decimal, error)
}

// Notificador recebe os avisos de eventos criados, confirmados ou cancelados.
type Notificador interface {
	Notificar(a notificacao.Aviso)
}

type Handler struct {
	DB         *gorm.DB
	Repo       *Repository
	Financeiro *financeiro.Repository
	Config     parcelamento.FonteConfiguracao
	Precos     FontePrecos
	Avisos     Notificador
	Agora      func() time.Time
}

func NewHandler(db *gorm.DB, cfg parcelamento.FonteConfiguracao, precos FontePrecos) *Handler {
	return &Handler{
		DB:         db,
		Repo:       NewRepository(db),
		Financeiro: financeiro.NewRepository(db),
		Config:     cfg,
		Precos:     precos,
		Agora:      time.Now,
	}
}

func cotar(cfg taxas.Configuracao, ev *Evento) parcelamento.Cotacao {
	return parcelamento.Simular(cfg, parcelamento.Simulacao{
		ValorContrato: ev.ValorContrato,
		ValorEntrada:  ev.ValorEntrada,
		Metodo:        taxas.MetodoPagamento(ev.MetodoPagamento),
		Bandeira:      taxas.Bandeira(ev.Bandeira),
		Parcelas:      ev.QtdParcelas,
	})
}

// calcular carrega configuração e preços e devolve os totais da composição.
func (h *Handler) calcular(ctx context.Context, comp func(valorKm decimal.Decimal) *Composicao) (taxas.Configuracao, *Composicao, Totais, error) {
	cfg, err := h.Config.Carregar(ctx)
	if err != nil {
		return cfg, nil, Totais{}, err
	}
	c := comp(cfg.ValorKm)
	precos, err := h.Precos.PrecosVenda(ctx, c.Personagens())
	if err != nil {
		return cfg, nil, Totais{}, err
	}
	return cfg, c, c.Totais(precos), nil
}

// POST /eventos/composicao
func (h *Handler) CalcularComposicao(w http.ResponseWriter, r *http.Request) {
	var dto composicaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	_, _, tot, err := h.calcular(r.Context(), dto.composicao)
	if err != nil {
		zap.L().Error("calcular composição", zap.Error(err))
		http.Error(w, "Erro ao calcular composição", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tot)
}

// POST /eventos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto eventoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	cfg, comp, tot, err := h.calcular(r.Context(), dto.composicao)
	if err != nil {
		zap.L().Error("calcular evento", zap.Error(err))
		http.Error(w, "Erro ao calcular valores do evento", http.StatusInternalServerError)
		return
	}

	ev := dto.paraEvento(comp)
	ev.ValorContrato = utils.Arredondar(DefinirValorContrato(false, decimal.Zero, dto.ValorContrato.Decimal, tot.ValorContratoProposto, dto.RecalcularValor))
	cot := cotar(cfg, ev)

	var lancs []financeiro.Transacao
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repo.WithDB(tx).Create(ev); err != nil {
			return err
		}
		if ev.Status == StatusCancelado {
			return nil
		}
		lancs = Lancamentos(ev, cot.Resultado, h.Agora())
		return h.Financeiro.WithDB(tx).CreateInBatch(lancs)
	})
	if err != nil {
		zap.L().Error("criar evento", zap.Error(err))
		metrics.Eventos.WithLabelValues("criar", "erro").Inc()
		http.Error(w, "Erro ao criar evento", http.StatusInternalServerError)
		return
	}
	registrarGravacao("criar", lancs)
	h.avisar("evento_criado", ev)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(EventoResposta{
		Evento:     ev,
		Totais:     tot,
		Cotacao:    cot,
		Pagamentos: ResumirPagamentos(ev.ValorContrato, ev.ValorEntrada, ev.Pagamentos),
	})
}

// GET /eventos?status=&clienteId=&de=&ate=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtro{Status: q.Get("status")}
	if s := q.Get("clienteId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "clienteId inválido", http.StatusBadRequest)
			return
		}
		f.ClienteID = uint(id)
	}
	for campo, dst := range map[string]**time.Time{"de": &f.De, "ate": &f.Ate} {
		if s := q.Get(campo); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				http.Error(w, "data '"+campo+"' inválida, use AAAA-MM-DD", http.StatusBadRequest)
				return
			}
			*dst = &t
		}
	}

	evs, err := h.Repo.List(f)
	if err != nil {
		http.Error(w, "Erro ao buscar eventos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(evs)
}

// GET /eventos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.buscar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ev)
}

// PUT /eventos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	atual, ok := h.buscar(w, r)
	if !ok {
		return
	}

	var dto eventoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	cfg, comp, tot, err := h.calcular(r.Context(), dto.composicao)
	if err != nil {
		zap.L().Error("calcular evento", zap.Error(err), zap.Uint("evento", atual.ID))
		http.Error(w, "Erro ao calcular valores do evento", http.StatusInternalServerError)
		return
	}

	ev := dto.paraEvento(comp)
	ev.ID = atual.ID
	ev.CreatedAt = atual.CreatedAt
	ev.Pagamentos = atual.Pagamentos
	ev.ValorContrato = utils.Arredondar(DefinirValorContrato(true, atual.ValorContrato, dto.ValorContrato.Decimal, tot.ValorContratoProposto, dto.RecalcularValor))
	cot := cotar(cfg, ev)

	var lancs []financeiro.Transacao
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		fin := h.Financeiro.WithDB(tx)
		if err := h.Repo.WithDB(tx).SubstituirItens(ev); err != nil {
			return err
		}
		existentes, err := fin.List(financeiro.Filtro{EventoID: ev.ID})
		if err != nil {
			return err
		}
		if err := fin.CancelarPendentesDoEvento(ev.ID); err != nil {
			return err
		}
		if ev.Status == StatusCancelado {
			return nil
		}
		lancs = lancamentosEmAberto(ev, cot.Resultado, h.Agora(), existentes)
		return fin.CreateInBatch(lancs)
	})
	if err != nil {
		zap.L().Error("atualizar evento", zap.Error(err), zap.Uint("evento", ev.ID))
		metrics.Eventos.WithLabelValues("atualizar", "erro").Inc()
		http.Error(w, "Erro ao atualizar evento", http.StatusInternalServerError)
		return
	}
	registrarGravacao("atualizar", lancs)
	if ev.Status != atual.Status {
		h.avisar("evento_"+strings.ToLower(ev.Status), ev)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(EventoResposta{
		Evento:     ev,
		Totais:     tot,
		Cotacao:    cot,
		Pagamentos: ResumirPagamentos(ev.ValorContrato, ev.ValorEntrada, ev.Pagamentos),
	})
}

// DELETE /eventos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.buscar(w, r)
	if !ok {
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Financeiro.WithDB(tx).CancelarPendentesDoEvento(ev.ID); err != nil {
			return err
		}
		return h.Repo.WithDB(tx).Delete(ev)
	})
	if err != nil {
		zap.L().Error("excluir evento", zap.Error(err), zap.Uint("evento", ev.ID))
		metrics.Eventos.WithLabelValues("excluir", "erro").Inc()
		http.Error(w, "Erro ao excluir evento", http.StatusInternalServerError)
		return
	}
	metrics.Eventos.WithLabelValues("excluir", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// GET /eventos/{id}/financeiro
// Recalcula detalhamento, parcelamento e pagamentos a partir do que está gravado.
func (h *Handler) ResumoFinanceiro(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.buscar(w, r)
	if !ok {
		return
	}

	cfg, _, tot, err := h.calcular(r.Context(), func(valorKm decimal.Decimal) *Composicao {
		return ComposicaoDoEvento(ev, valorKm)
	})
	if err != nil {
		zap.L().Error("calcular financeiro do evento", zap.Error(err), zap.Uint("evento", ev.ID))
		http.Error(w, "Erro ao calcular financeiro do evento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(EventoResposta{
		Evento:     ev,
		Totais:     tot,
		Cotacao:    cotar(cfg, ev),
		Pagamentos: ResumirPagamentos(ev.ValorContrato, ev.ValorEntrada, ev.Pagamentos),
	})
}

// POST /eventos/{id}/pagamentos
func (h *Handler) RegistrarPagamento(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.buscar(w, r)
	if !ok {
		return
	}

	var dto pagamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if !dto.Valor.IsPositive() {
		http.Error(w, "O valor deve ser maior que zero", http.StatusBadRequest)
		return
	}
	if dto.DataPagamento.IsZero() {
		dto.DataPagamento = h.Agora()
	}

	p := PagamentoEvento{
		EventoID:        ev.ID,
		Valor:           utils.Arredondar(dto.Valor.Decimal),
		DataPagamento:   dto.DataPagamento,
		MetodoPagamento: dto.MetodoPagamento,
	}
	if err := h.Repo.CreatePagamento(&p); err != nil {
		http.Error(w, "Erro ao registrar pagamento", http.StatusInternalServerError)
		return
	}

	ev.Pagamentos = append(ev.Pagamentos, p)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(ResumirPagamentos(ev.ValorContrato, ev.ValorEntrada, ev.Pagamentos))
}

// DELETE /eventos/{id}/pagamentos/{pagamentoId}
func (h *Handler) RemoverPagamento(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventoID, err1 := strconv.Atoi(vars["id"])
	pagamentoID, err2 := strconv.Atoi(vars["pagamentoId"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	removido, err := h.Repo.DeletePagamento(uint(eventoID), uint(pagamentoID))
	if err != nil {
		http.Error(w, "Erro ao remover pagamento", http.StatusInternalServerError)
		return
	}
	if !removido {
		http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) avisar(tipo string, ev *Evento) {
	if h.Avisos == nil {
		return
	}
	h.Avisos.Notificar(notificacao.Aviso{
		Tipo:     tipo,
		Mensagem: ev.Nome + " em " + ev.DataEvento.Format("02/01/2006") + " (" + ev.Status + ")",
		EventoID: ev.ID,
	})
}

func registrarGravacao(operacao string, lancs []financeiro.Transacao) {
	metrics.Eventos.WithLabelValues(operacao, "ok").Inc()
	for _, t := range lancs {
		metrics.Lancamentos.WithLabelValues(t.Tipo).Inc()
	}
}

func (h *Handler) buscar(w http.ResponseWriter, r *http.Request) (*Evento, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	ev, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Evento não encontrado", http.StatusNotFound)
		} else {
			http.Error(w, "Erro ao buscar evento", http.StatusInternalServerError)
		}
		return nil, false
	}
	return ev, true
}

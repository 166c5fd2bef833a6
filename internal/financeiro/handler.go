package financeiro

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// DTO usado no POST /transacoes
type TransacaoCreateDTO struct {
	Tipo            string      `json:"tipo"`
	Descricao       string      `json:"descricao"`
	Valor           utils.Valor `json:"valor"`
	DataVencimento  time.Time   `json:"dataVencimento"`
	MetodoPagamento string      `json:"metodoPagamento"`
	EventoID        *uint       `json:"eventoId"`
	FuncionarioID   *uint       `json:"funcionarioId"`
}

func (dto TransacaoCreateDTO) validar() string {
	switch {
	case dto.Tipo != TipoReceber && dto.Tipo != TipoPagar:
		return "Tipo inválido. Use 'receber' ou 'pagar'."
	case strings.TrimSpace(dto.Descricao) == "":
		return "O campo 'descricao' é obrigatório"
	case !dto.Valor.IsPositive():
		return "O valor deve ser maior que zero"
	case dto.DataVencimento.IsZero():
		return "O campo 'dataVencimento' é obrigatório"
	}
	return ""
}

// filtroDaQuery lê tipo, status, eventoId, de e ate (AAAA-MM-DD).
func filtroDaQuery(r *http.Request) (Filtro, error) {
	q := r.URL.Query()
	f := Filtro{Tipo: q.Get("tipo"), Status: q.Get("status")}

	if s := q.Get("eventoId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return f, errors.New("eventoId inválido")
		}
		f.EventoID = uint(id)
	}
	for campo, dst := range map[string]**time.Time{"de": &f.De, "ate": &f.Ate} {
		if s := q.Get(campo); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return f, errors.New("data '" + campo + "' inválida, use AAAA-MM-DD")
			}
			*dst = &t
		}
	}
	return f, nil
}

// GET /transacoes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filtroDaQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ts, err := h.Repo.List(f)
	if err != nil {
		zap.L().Error("listar transações", zap.Error(err))
		http.Error(w, "Erro ao buscar transações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ts)
}

// GET /transacoes/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	f, err := filtroDaQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rs, err := h.Repo.Resumir(f)
	if err != nil {
		zap.L().Error("resumir transações", zap.Error(err))
		http.Error(w, "Erro ao resumir transações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rs)
}

// POST /transacoes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto TransacaoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	t := Transacao{
		Tipo:            dto.Tipo,
		Descricao:       strings.TrimSpace(dto.Descricao),
		Valor:           utils.Arredondar(dto.Valor.Decimal),
		DataVencimento:  dto.DataVencimento,
		Status:          StatusPendente,
		MetodoPagamento: dto.MetodoPagamento,
		EventoID:        dto.EventoID,
		FuncionarioID:   dto.FuncionarioID,
	}
	if err := h.Repo.Create(&t); err != nil {
		zap.L().Error("criar transação", zap.Error(err))
		http.Error(w, "Erro ao criar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

// StatusPermitido aplica a regra de transição: só "Pendente", "Pago" e
// "Cancelada" existem, e um lançamento pago não pode voltar atrás.
func StatusPermitido(atual, novo string) (bool, string) {
	switch novo {
	case StatusPendente, StatusPago, StatusCancelada:
	default:
		return false, "Status inválido. Use 'Pendente', 'Pago' ou 'Cancelada'."
	}
	if atual == StatusPago && novo != StatusPago {
		return false, "Não é permitido alterar o status de uma transação já paga"
	}
	return true, ""
}

// PATCH /transacoes/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da transação inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	atual, err := h.Repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao buscar transação", http.StatusInternalServerError)
		return
	}
	if ok, msg := StatusPermitido(atual.Status, payload.Status); !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateStatus(uint(id), payload.Status, time.Now()); err != nil {
		zap.L().Error("atualizar status da transação", zap.Uint("id", uint(id)), zap.Error(err))
		http.Error(w, "Erro ao atualizar status da transação", http.StatusInternalServerError)
		return
	}

	t, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar transação atualizada", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}

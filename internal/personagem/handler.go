// internal/personagem/handler.go
package personagem

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type personagemDTO struct {
	Nome       string      `json:"nome"`
	Descricao  string      `json:"descricao"`
	PrecoVenda utils.Valor `json:"precoVenda"`
	PrecoCusto utils.Valor `json:"precoCusto"`
	Ativo      *bool       `json:"ativo"`
}

func (dto personagemDTO) validar() string {
	if strings.TrimSpace(dto.Nome) == "" {
		return "O campo 'nome' é obrigatório"
	}
	if dto.PrecoVenda.IsNegative() || dto.PrecoCusto.IsNegative() {
		return "Preços não podem ser negativos"
	}
	return ""
}

// POST /personagens
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto personagemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p := Personagem{
		Nome:       strings.TrimSpace(dto.Nome),
		Descricao:  dto.Descricao,
		PrecoVenda: utils.Arredondar(dto.PrecoVenda.Decimal),
		PrecoCusto: utils.Arredondar(dto.PrecoCusto.Decimal),
		Ativo:      dto.Ativo == nil || *dto.Ativo,
	}
	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "Erro ao criar personagem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /personagens?ativos=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	apenasAtivos := r.URL.Query().Get("ativos") == "true"

	ps, err := h.Repo.ListAll(apenasAtivos)
	if err != nil {
		http.Error(w, "Erro ao buscar personagens", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ps)
}

// GET /personagens/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buscar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /personagens/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buscar(w, r)
	if !ok {
		return
	}

	var dto personagemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p.Nome = strings.TrimSpace(dto.Nome)
	p.Descricao = dto.Descricao
	p.PrecoVenda = utils.Arredondar(dto.PrecoVenda.Decimal)
	p.PrecoCusto = utils.Arredondar(dto.PrecoCusto.Decimal)
	if dto.Ativo != nil {
		p.Ativo = *dto.Ativo
	}

	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "Erro ao atualizar personagem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// DELETE /personagens/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buscar(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(p); err != nil {
		http.Error(w, "Erro ao deletar personagem", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) buscar(w http.ResponseWriter, r *http.Request) (*Personagem, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de personagem inválido", http.StatusBadRequest)
		return nil, false
	}

	p, err := h.Repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Personagem não encontrado", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, "Erro ao buscar personagem", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

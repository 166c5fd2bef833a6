package financeiro

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados das transações.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// CreateInBatch cria múltiplas transações de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(ts []Transacao) error {
	if len(ts) == 0 {
		return nil
	}
	return r.DB.Create(&ts).Error
}

func (r *Repository) Create(t *Transacao) error {
	return r.DB.Create(t).Error
}

// Filtro restringe a listagem; campos vazios não filtram.
type Filtro struct {
	Tipo     string
	Status   string
	EventoID uint
	De       *time.Time
	Ate      *time.Time
}

func (r *Repository) List(f Filtro) ([]Transacao, error) {
	q := r.DB.Model(&Transacao{})
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EventoID != 0 {
		q = q.Where("evento_id = ?", f.EventoID)
	}
	if f.De != nil {
		q = q.Where("data_vencimento >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("data_vencimento <= ?", *f.Ate)
	}

	var ts []Transacao
	err := q.Order("data_vencimento ASC").Find(&ts).Error
	return ts, err
}

func (r *Repository) FindByID(id uint) (*Transacao, error) {
	var t Transacao
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatus atualiza o status e ajusta data_pagamento.
// - Se status == "Pago", define data_pagamento = data informada.
// - Caso contrário, zera data_pagamento (NULL).
func (r *Repository) UpdateStatus(id uint, status string, dataPagamento time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == StatusPago {
		updates["data_pagamento"] = &dataPagamento
	} else {
		updates["data_pagamento"] = nil
	}
	return r.DB.Model(&Transacao{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// CancelarPendentesDoEvento cancela os lançamentos ainda pendentes de um evento.
func (r *Repository) CancelarPendentesDoEvento(eventoID uint) error {
	return r.DB.Model(&Transacao{}).
		Where("evento_id = ? AND status = ?", eventoID, StatusPendente).
		Update("status", StatusCancelada).Error
}

// Resumo soma os valores por tipo e status.
type Resumo struct {
	Tipo   string          `json:"tipo"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
}

func (r *Repository) Resumir(f Filtro) ([]Resumo, error) {
	q := r.DB.Model(&Transacao{})
	if f.De != nil {
		q = q.Where("data_vencimento >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("data_vencimento <= ?", *f.Ate)
	}

	var rs []Resumo
	err := q.Select("tipo, status, COALESCE(SUM(valor), 0) AS total").
		Group("tipo, status").
		Scan(&rs).Error
	return rs, err
}

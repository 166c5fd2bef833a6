package evento

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula o acesso a dados de eventos.
type Repository struct {
	DB *gorm.DB
}

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

// Create grava o evento com despesas, cachês e pagamentos.
func (r *Repository) Create(ev *Evento) error {
	return r.DB.Create(ev).Error
}

func (r *Repository) FindByID(id uint) (*Evento, error) {
	var ev Evento
	err := r.DB.
		Preload("Despesas").
		Preload("Caches").
		Preload("Pagamentos", func(db *gorm.DB) *gorm.DB { return db.Order("data_pagamento ASC") }).
		First(&ev, id).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Filtro restringe a listagem; campos vazios não filtram.
type Filtro struct {
	Status    string
	ClienteID uint
	De        *time.Time
	Ate       *time.Time
}

func (r *Repository) List(f Filtro) ([]Evento, error) {
	q := r.DB.Model(&Evento{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClienteID != 0 {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}
	if f.De != nil {
		q = q.Where("data_evento >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("data_evento <= ?", *f.Ate)
	}

	var evs []Evento
	err := q.Order("data_evento ASC").Find(&evs).Error
	return evs, err
}

// SubstituirItens salva os campos do evento e troca despesas e cachês pelos
// informados. Pagamentos registrados não são tocados.
func (r *Repository) SubstituirItens(ev *Evento) error {
	if err := r.DB.Omit(clause.Associations).Save(ev).Error; err != nil {
		return err
	}
	if err := r.DB.Where("evento_id = ?", ev.ID).Delete(&DespesaEvento{}).Error; err != nil {
		return err
	}
	if err := r.DB.Where("evento_id = ?", ev.ID).Delete(&CacheFuncionario{}).Error; err != nil {
		return err
	}
	for i := range ev.Despesas {
		ev.Despesas[i].ID = 0
		ev.Despesas[i].EventoID = ev.ID
	}
	for i := range ev.Caches {
		ev.Caches[i].ID = 0
		ev.Caches[i].EventoID = ev.ID
	}
	if len(ev.Despesas) > 0 {
		if err := r.DB.Create(&ev.Despesas).Error; err != nil {
			return err
		}
	}
	if len(ev.Caches) > 0 {
		if err := r.DB.Create(&ev.Caches).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) Delete(ev *Evento) error {
	return r.DB.Delete(ev).Error
}

func (r *Repository) CreatePagamento(p *PagamentoEvento) error {
	return r.DB.Create(p).Error
}

// DeletePagamento remove um pagamento do evento; devolve false se não existia.
func (r *Repository) DeletePagamento(eventoID, pagamentoID uint) (bool, error) {
	res := r.DB.Where("evento_id = ?", eventoID).Delete(&PagamentoEvento{}, pagamentoID)
	return res.RowsAffected > 0, res.Error
}

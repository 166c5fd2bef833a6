// internal/personagem/repository.go
package personagem

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Personagem) error {
	return r.DB.Create(p).Error
}

// ListAll lista os personagens; com apenasAtivos filtra os desativados.
func (r *Repository) ListAll(apenasAtivos bool) ([]Personagem, error) {
	var ps []Personagem
	q := r.DB.Order("nome ASC")
	if apenasAtivos {
		q = q.Where("ativo = ?", true)
	}
	err := q.Find(&ps).Error
	return ps, err
}

func (r *Repository) FindByID(id uint) (*Personagem, error) {
	var p Personagem
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *Personagem) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(p *Personagem) error {
	return r.DB.Delete(p).Error
}

// PrecosVenda devolve o preço de venda de cada id encontrado.
// Ids inexistentes ficam de fora do mapa.
func (r *Repository) PrecosVenda(ctx context.Context, ids []uint) (map[uint]decimal.Decimal, error) {
	precos := make(map[uint]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return precos, nil
	}

	var ps []Personagem
	if err := r.DB.WithContext(ctx).
		Select("id", "preco_venda").
		Where("id IN ?", ids).
		Find(&ps).Error; err != nil {
		return nil, err
	}
	for _, p := range ps {
		precos[p.ID] = p.PrecoVenda
	}
	return precos, nil
}

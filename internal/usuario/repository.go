package usuario

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// BuscarPorEmail ignora maiúsculas e espaços nas pontas.
func (r *Repository) BuscarPorEmail(email string) (*Usuario, error) {
	var u Usuario
	err := r.DB.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(u *Usuario) error {
	return r.DB.Create(u).Error
}

func (r *Repository) FindByID(id uint) (*Usuario, error) {
	var u Usuario
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Situacao responde às sessões se o usuário ainda existe, está ativo e é admin.
func (r *Repository) Situacao(id uint) (existe, ativo, isAdmin bool, err error) {
	u, err := r.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, false, nil
	}
	if err != nil {
		return false, false, false, err
	}
	return true, u.Ativo, u.IsAdmin, nil
}

func (r *Repository) ListAll() ([]Usuario, error) {
	var us []Usuario
	err := r.DB.Order("nome ASC").Find(&us).Error
	return us, err
}

func (r *Repository) Update(u *Usuario) error {
	return r.DB.Save(u).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Usuario{}, id).Error
}

func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&Usuario{}).Count(&n).Error
	return n, err
}

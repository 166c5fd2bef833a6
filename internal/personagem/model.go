// internal/personagem/model.go
package personagem

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Personagem é um item locável (fantasia/personagem) oferecido nos eventos.
type Personagem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Nome       string          `gorm:"size:255;not null" json:"nome"`
	Descricao  string          `gorm:"type:text" json:"descricao"`
	PrecoVenda decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"precoVenda"`
	PrecoCusto decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"precoCusto"`
	Ativo      bool            `gorm:"not null;default:true" json:"ativo"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Personagem{})
}

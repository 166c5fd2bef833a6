package usuario

import "gorm.io/gorm"

// Usuario é um membro da equipe com acesso ao sistema.
type Usuario struct {
	gorm.Model
	Nome                  string `json:"nome" gorm:"size:255;not null"`
	Email                 string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Telefone              string `json:"telefone"`
	Senha                 string `json:"-"`
	IsAdmin               bool   `json:"isAdmin"`
	Ativo                 bool   `json:"ativo" gorm:"not null;default:true"`
	PrecisaRedefinirSenha bool   `json:"precisaRedefinirSenha"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}

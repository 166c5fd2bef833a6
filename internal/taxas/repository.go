package taxas

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	chaveModo           = "financeiro.modo_taxa"
	chavePersonalizadas = "financeiro.taxas_personalizadas"
	chaveJurosManual    = "financeiro.juros_mensal"
	chaveFaixas         = "financeiro.faixas_sumup"
	chaveFaixa          = "financeiro.faixa_sumup"
	chaveRecebimento    = "financeiro.recebimento_sumup"
	chaveValorKm        = "financeiro.valor_km"
)

// ConfiguracaoSistema é um parâmetro do sistema guardado como chave/valor.
type ConfiguracaoSistema struct {
	Chave     string    `gorm:"primaryKey;size:100" json:"chave"`
	Valor     string    `gorm:"type:text;not null;default:''" json:"valor"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName fixa o nome da tabela.
func (ConfiguracaoSistema) TableName() string {
	return "configuracoes"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ConfiguracaoSistema{})
}

// Repositorio lê e grava o retrato das configurações financeiras.
type Repositorio interface {
	Carregar(ctx context.Context) (Configuracao, error)
	Salvar(ctx context.Context, cfg Configuracao) error
}

// Repository encapsula o acesso à tabela de configurações.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Carregar(ctx context.Context) (Configuracao, error) {
	var linhas []ConfiguracaoSistema
	if err := r.DB.WithContext(ctx).
		Where("chave LIKE ?", "financeiro.%").
		Find(&linhas).Error; err != nil {
		return Configuracao{}, fmt.Errorf("buscar configurações: %w", err)
	}
	return decodificar(linhas)
}

// Salvar grava todas as chaves numa única transação (upsert por chave).
func (r *Repository) Salvar(ctx context.Context, cfg Configuracao) error {
	linhas, err := codificar(cfg)
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range linhas {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "chave"}},
				DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
			}).Create(&linhas[i]).Error; err != nil {
				return fmt.Errorf("salvar %s: %w", linhas[i].Chave, err)
			}
		}
		return nil
	})
}

func decodificar(linhas []ConfiguracaoSistema) (Configuracao, error) {
	valores := make(map[string]string, len(linhas))
	for _, l := range linhas {
		valores[l.Chave] = l.Valor
	}

	cfg := Configuracao{
		Modo:              ModoPersonalizado,
		JurosMensalManual: utils.ParseValor(valores[chaveJurosManual]),
		Recebimento:       Recebimento(valores[chaveRecebimento]),
		ValorKm:           utils.ParseValor(valores[chaveValorKm]),
	}
	if m := Modo(valores[chaveModo]); m == ModoSumup {
		cfg.Modo = ModoSumup
	}
	if cfg.Recebimento != Em30Dias {
		cfg.Recebimento = NaHora
	}
	if n, err := strconv.Atoi(valores[chaveFaixa]); err == nil {
		cfg.FaixaSelecionada = n
	}

	if raw := valores[chavePersonalizadas]; raw != "" {
		var p TaxasPersonalizadas
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return Configuracao{}, fmt.Errorf("taxas personalizadas inválidas: %w", err)
		}
		cfg.Personalizadas = &p
	}
	if raw := valores[chaveFaixas]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Faixas); err != nil {
			return Configuracao{}, fmt.Errorf("faixas sumup inválidas: %w", err)
		}
	}
	return cfg, nil
}

func codificar(cfg Configuracao) ([]ConfiguracaoSistema, error) {
	var personalizadas, faixas string
	if cfg.Personalizadas != nil {
		b, err := json.Marshal(cfg.Personalizadas)
		if err != nil {
			return nil, err
		}
		personalizadas = string(b)
	}
	if len(cfg.Faixas) > 0 {
		b, err := json.Marshal(cfg.Faixas)
		if err != nil {
			return nil, err
		}
		faixas = string(b)
	}

	return []ConfiguracaoSistema{
		{Chave: chaveModo, Valor: string(cfg.Modo)},
		{Chave: chavePersonalizadas, Valor: personalizadas},
		{Chave: chaveJurosManual, Valor: cfg.JurosMensalManual.String()},
		{Chave: chaveFaixas, Valor: faixas},
		{Chave: chaveFaixa, Valor: strconv.Itoa(cfg.FaixaSelecionada)},
		{Chave: chaveRecebimento, Valor: string(cfg.Recebimento)},
		{Chave: chaveValorKm, Valor: cfg.ValorKm.String()},
	}, nil
}

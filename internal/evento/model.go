package evento

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusOrcamento  = "Orçamento"
	StatusConfirmado = "Confirmado"
	StatusRealizado  = "Realizado"
	StatusCancelado  = "Cancelado"
)

// Evento é uma contratação: agenda, local, itens e forma de pagamento.
// Cliente, buffet e funcionários são referenciados apenas pelo id.
type Evento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome        string    `gorm:"size:255;not null" json:"nome"`
	ClienteID   uint      `gorm:"not null;index" json:"clienteId"`
	BuffetID    *uint     `gorm:"index" json:"buffetId,omitempty"`
	DataEvento  time.Time `gorm:"not null;index" json:"dataEvento"`
	HoraInicio  string    `gorm:"size:5" json:"horaInicio"`
	HoraFim     string    `gorm:"size:5" json:"horaFim"`
	Local       string    `gorm:"size:255" json:"local"`
	Endereco    string    `gorm:"size:255" json:"endereco"`
	Status      string    `gorm:"size:30;not null;default:'Orçamento';index" json:"status"`
	Observacoes string    `gorm:"type:text" json:"observacoes"`

	// Personagens selecionados, guardados como lista de ids em JSONB
	PersonagensIDs []uint          `gorm:"type:jsonb;serializer:json" json:"personagensIds"`
	DistanciaKm    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"distanciaKm"`

	ValorContrato   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valorContrato"`
	ValorEntrada    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valorEntrada"`
	MetodoPagamento string          `gorm:"size:30" json:"metodoPagamento"`
	Bandeira        string          `gorm:"size:30" json:"bandeira"`
	QtdParcelas     int             `gorm:"not null;default:1" json:"qtdParcelas"`

	Despesas   []DespesaEvento    `gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE" json:"despesas"`
	Caches     []CacheFuncionario `gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE" json:"caches"`
	Pagamentos []PagamentoEvento  `gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE" json:"pagamentos"`
}

// DespesaEvento é um gasto avulso lançado no evento.
type DespesaEvento struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	EventoID  uint            `gorm:"not null;index" json:"eventoId"`
	Titulo    string          `gorm:"size:255;not null" json:"titulo"`
	Valor     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valor"`
	Descricao string          `gorm:"type:text" json:"descricao"`
}

// CacheFuncionario é o cachê combinado com um funcionário escalado.
type CacheFuncionario struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	EventoID      uint            `gorm:"not null;index" json:"eventoId"`
	FuncionarioID uint            `gorm:"not null;index" json:"funcionarioId"`
	PersonagemID  *uint           `json:"personagemId,omitempty"`
	ValorCache    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valorCache"`
}

// PagamentoEvento é um pagamento parcial registrado pela equipe.
// Não tem relação com as parcelas financiadas no cartão.
type PagamentoEvento struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	EventoID        uint            `gorm:"not null;index" json:"eventoId"`
	Valor           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valor"`
	DataPagamento   time.Time       `gorm:"not null" json:"dataPagamento"`
	MetodoPagamento string          `gorm:"size:30" json:"metodoPagamento"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Evento{}, &DespesaEvento{}, &CacheFuncionario{}, &PagamentoEvento{})
}

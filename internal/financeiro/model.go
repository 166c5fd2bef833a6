package financeiro

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TipoReceber = "receber"
	TipoPagar   = "pagar"

	StatusPendente  = "Pendente"
	StatusPago      = "Pago"
	StatusCancelada = "Cancelada"
)

// Transacao é um lançamento financeiro: conta a receber ou a pagar.
type Transacao struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Tipo            string          `gorm:"size:20;not null;index" json:"tipo"`
	Descricao       string          `gorm:"size:255;not null" json:"descricao"`
	Valor           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valor"`
	DataVencimento  time.Time       `gorm:"not null;index" json:"dataVencimento"`
	Status          string          `gorm:"size:50;not null;default:'Pendente';index" json:"status"`
	DataPagamento   *time.Time      `json:"dataPagamento"`
	MetodoPagamento string          `gorm:"size:30" json:"metodoPagamento"`

	EventoID      *uint `gorm:"index" json:"eventoId,omitempty"`
	FuncionarioID *uint `gorm:"index" json:"funcionarioId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Transacao{})
}

// DividirEmParcelas reparte total em até n valores de centavos inteiros.
// Cada parcela leva o quociente truncado e a última absorve a sobra; quando
// não há centavos para todas, a quantidade cai para que nenhuma fique zerada.
func DividirEmParcelas(total decimal.Decimal, n int) []decimal.Decimal {
	total = total.Round(2)
	if n <= 0 || !total.IsPositive() {
		return nil
	}
	if centavos := total.Shift(2).IntPart(); centavos < int64(n) {
		n = int(centavos)
	}
	qtd := decimal.NewFromInt(int64(n))
	base := total.DivRound(qtd, 6).RoundDown(2)
	valores := make([]decimal.Decimal, n)
	for i := range valores {
		valores[i] = base
	}
	valores[n-1] = total.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))
	return valores
}

// GerarParcelas cria uma conta a receber por valor. A numeração começa em
// primeira, de um total de qtd, e o vencimento da parcela k cai k-1 meses
// após inicio.
func GerarParcelas(eventoID uint, descricao string, valores []decimal.Decimal, primeira, qtd int, inicio time.Time, metodo string) []Transacao {
	parcelas := make([]Transacao, 0, len(valores))
	for i, v := range valores {
		id := eventoID
		num := primeira + i
		parcelas = append(parcelas, Transacao{
			Tipo:            TipoReceber,
			Descricao:       descricaoParcela(descricao, num, qtd),
			Valor:           v,
			DataVencimento:  inicio.AddDate(0, num-1, 0),
			Status:          StatusPendente,
			MetodoPagamento: metodo,
			EventoID:        &id,
		})
	}
	return parcelas
}

func descricaoParcela(base string, i, qtd int) string {
	if qtd <= 1 {
		return base
	}
	return base + " (" + strconv.Itoa(i) + "/" + strconv.Itoa(qtd) + ")"
}

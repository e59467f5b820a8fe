package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de registro do Bloco K (SPED Fiscal).
const (
	BlocoKRecordStock       = "K200" // Estoque escriturado no fim do período
	BlocoKRecordOtherMov    = "K220" // Outras movimentações internas
	BlocoKRecordProduction  = "K230" // Itens produzidos
	BlocoKRecordConsumption = "K235" // Insumos consumidos na produção
)

// BlocoKRecord é uma linha de movimentação de estoque/produção derivada para o
// Bloco K. Gerado em lote por período; a regeração substitui o conjunto anterior.
type BlocoKRecord struct {
	ID           string
	CompanyID    string
	Year         int
	Month        int
	RecordType   string // K200 | K220 | K230 | K235
	ProductCode  string
	Description  string // Normalizada para texto SPED (maiúsculas, sem acentos)
	MovementDate time.Time
	Quantity     decimal.Decimal
	CreatedAt    time.Time
}

// Tipos de movimentação de estoque usados como fonte do Bloco K.
const (
	StockMovementIn         = "IN"
	StockMovementOut        = "OUT"
	StockMovementProduction = "PRODUCTION"
	StockMovementConsume    = "CONSUMPTION"
	StockMovementTransfer   = "TRANSFER"
)

// StockMovement é a movimentação bruta de estoque registrada pelo módulo de
// inventário (fonte de dados, somente leitura para o motor fiscal).
type StockMovement struct {
	ID          string
	CompanyID   string
	ProductCode string
	Description string
	Type        string // IN | OUT | PRODUCTION | CONSUMPTION | TRANSFER
	Quantity    decimal.Decimal
	Date        time.Time
}

// StockBalance é o saldo de estoque de um produto no fim do período.
type StockBalance struct {
	CompanyID   string
	ProductCode string
	Description string
	Quantity    decimal.Decimal
	Date        time.Time
}

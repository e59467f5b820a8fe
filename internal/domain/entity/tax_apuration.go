package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de imposto apurados por período.
const (
	TaxTypeICMS   = "ICMS"
	TaxTypeIPI    = "IPI"
	TaxTypePIS    = "PIS"
	TaxTypeCOFINS = "COFINS"
	TaxTypeISS    = "ISS"
)

// Natureza de um lançamento na apuração.
const (
	ItemNatureCredit = "CREDIT"
	ItemNatureDebit  = "DEBIT"
)

// TaxApuration é o livro de apuração de um imposto em um período
// (única por companyId, taxType, year, month). Depois de encerrada
// (ClosedAt preenchido) nenhum item pode ser adicionado.
type TaxApuration struct {
	ID          string
	CompanyID   string
	TaxType     string
	Year        int
	Month       int
	TotalCredit decimal.Decimal
	TotalDebit  decimal.Decimal
	Balance     decimal.Decimal // TotalCredit - TotalDebit
	ClosedAt    *time.Time      // nil = aberta
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Closed indica se a apuração já foi encerrada.
func (a *TaxApuration) Closed() bool { return a.ClosedAt != nil }

// Status derivado do encerramento (OPEN | CLOSED).
func (a *TaxApuration) Status() string {
	if a.Closed() {
		return "CLOSED"
	}
	return "OPEN"
}

// ApurationItem é um lançamento de crédito ou débito vinculado a um documento fiscal.
// O motor confia no taxValue informado pelo chamador (não recalcula base*rate),
// mas valida que o valor seja positivo e a natureza conhecida.
type ApurationItem struct {
	ID             string
	ApurationID    string
	DocumentType   string // NFE, NFSE, CTE, ...
	DocumentID     string
	DocumentNumber string
	CFOP           string
	BaseValue      decimal.Decimal
	Rate           decimal.Decimal
	TaxValue       decimal.Decimal
	Nature         string // CREDIT | DEBIT
	Description    string
	CreatedAt      time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DifalCalculation é o registro de auditoria de um cálculo de DIFAL/FCP em
// operação interestadual. Imutável depois de criado.
type DifalCalculation struct {
	ID               string
	CompanyID        string
	DocumentType     string
	DocumentID       string
	DocumentNumber   string
	UFOrigem         string
	UFDestino        string
	ProductValue     decimal.Decimal
	ICMSOrigemRate   decimal.Decimal
	ICMSDestinoRate  decimal.Decimal
	FCPRate          decimal.Decimal
	ICMSOrigemValue  decimal.Decimal
	ICMSDestinoValue decimal.Decimal
	DifalValue       decimal.Decimal // max(0, destino - origem)
	FCPValue         decimal.Decimal
	TotalValue       decimal.Decimal // DifalValue + FCPValue
	CreatedAt        time.Time
}

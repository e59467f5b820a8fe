package dto

import "github.com/shopspring/decimal"

// GetOrCreateApurationRequest body para POST /api/fiscal/apurations.
type GetOrCreateApurationRequest struct {
	TaxType string `json:"tax_type"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

// AddApurationItemRequest body para POST /api/fiscal/apurations/:id/items.
type AddApurationItemRequest struct {
	DocumentType   string          `json:"document_type"`
	DocumentID     string          `json:"document_id,omitempty"`
	DocumentNumber string          `json:"document_number,omitempty"`
	CFOP           string          `json:"cfop,omitempty"`
	BaseValue      decimal.Decimal `json:"base_value"`
	Rate           decimal.Decimal `json:"rate"`
	TaxValue       decimal.Decimal `json:"tax_value"`
	Nature         string          `json:"nature"` // CREDIT | DEBIT
	Description    string          `json:"description,omitempty"`
}

// CloseApurationRequest body para POST /api/fiscal/apurations/close.
type CloseApurationRequest struct {
	TaxType string `json:"tax_type"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

// ApurationResponse apuração com totais em respostas.
type ApurationResponse struct {
	ID          string                  `json:"id"`
	CompanyID   string                  `json:"company_id"`
	TaxType     string                  `json:"tax_type"`
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	Status      string                  `json:"status"` // OPEN | CLOSED
	TotalCredit decimal.Decimal         `json:"total_credit"`
	TotalDebit  decimal.Decimal         `json:"total_debit"`
	Balance     decimal.Decimal         `json:"balance"`
	ClosedAt    string                  `json:"closed_at,omitempty"`
	Items       []ApurationItemResponse `json:"items,omitempty"`
}

// ApurationItemResponse lançamento da apuração em respostas.
type ApurationItemResponse struct {
	ID             string          `json:"id"`
	DocumentType   string          `json:"document_type"`
	DocumentID     string          `json:"document_id,omitempty"`
	DocumentNumber string          `json:"document_number,omitempty"`
	CFOP           string          `json:"cfop,omitempty"`
	BaseValue      decimal.Decimal `json:"base_value"`
	Rate           decimal.Decimal `json:"rate"`
	TaxValue       decimal.Decimal `json:"tax_value"`
	Nature         string          `json:"nature"`
	Description    string          `json:"description,omitempty"`
}

// ApurationSummaryResponse agregação por tipo de imposto + totais gerais.
type ApurationSummaryResponse struct {
	Year        int                    `json:"year"`
	Month       int                    `json:"month"`
	ByTaxType   []ApurationSummaryLine `json:"by_tax_type"`
	TotalCredit decimal.Decimal        `json:"total_credit"`
	TotalDebit  decimal.Decimal        `json:"total_debit"`
	Balance     decimal.Decimal        `json:"balance"`
}

// ApurationSummaryLine totais de um tipo de imposto no período.
type ApurationSummaryLine struct {
	TaxType     string          `json:"tax_type"`
	Status      string          `json:"status"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	Balance     decimal.Decimal `json:"balance"`
}

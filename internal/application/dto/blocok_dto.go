package dto

import "github.com/shopspring/decimal"

// GenerateBlocoKRequest body para POST /api/fiscal/blocok/generate.
type GenerateBlocoKRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// BlocoKRecordResponse linha do Bloco K em respostas.
type BlocoKRecordResponse struct {
	ID           string          `json:"id"`
	RecordType   string          `json:"record_type"`
	ProductCode  string          `json:"product_code"`
	Description  string          `json:"description"`
	MovementDate string          `json:"movement_date"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ListBlocoKRequest query para GET /api/fiscal/blocok.
type ListBlocoKRequest struct {
	Year       int    `query:"year"`
	Month      int    `query:"month"`
	RecordType string `query:"record_type"`
}

package dto

import "github.com/shopspring/decimal"

// CalculateDifalRequest body para POST /api/fiscal/difal.
type CalculateDifalRequest struct {
	DocumentType    string          `json:"document_type"`
	DocumentID      string          `json:"document_id,omitempty"`
	DocumentNumber  string          `json:"document_number,omitempty"`
	UFOrigem        string          `json:"uf_origem"`
	UFDestino       string          `json:"uf_destino"`
	ProductValue    decimal.Decimal `json:"product_value"`
	ICMSOrigemRate  decimal.Decimal `json:"icms_origem_rate"`
	ICMSDestinoRate decimal.Decimal `json:"icms_destino_rate"`
	FCPRate         decimal.Decimal `json:"fcp_rate,omitempty"`
}

// DifalResponse cálculo persistido em respostas.
type DifalResponse struct {
	ID               string          `json:"id"`
	DocumentType     string          `json:"document_type"`
	DocumentNumber   string          `json:"document_number,omitempty"`
	UFOrigem         string          `json:"uf_origem"`
	UFDestino        string          `json:"uf_destino"`
	ProductValue     decimal.Decimal `json:"product_value"`
	ICMSOrigemRate   decimal.Decimal `json:"icms_origem_rate"`
	ICMSDestinoRate  decimal.Decimal `json:"icms_destino_rate"`
	FCPRate          decimal.Decimal `json:"fcp_rate"`
	ICMSOrigemValue  decimal.Decimal `json:"icms_origem_value"`
	ICMSDestinoValue decimal.Decimal `json:"icms_destino_value"`
	DifalValue       decimal.Decimal `json:"difal_value"`
	FCPValue         decimal.Decimal `json:"fcp_value"`
	TotalValue       decimal.Decimal `json:"total_value"`
	CreatedAt        string          `json:"created_at"`
}

// ListDifalRequest query para GET /api/fiscal/difal.
type ListDifalRequest struct {
	UFOrigem  string `query:"uf_origem"`
	UFDestino string `query:"uf_destino"`
	Limit     int    `query:"limit"`
}

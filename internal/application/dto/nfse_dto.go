package dto

import "github.com/shopspring/decimal"

// UpsertNfseConfigRequest body para PUT /api/fiscal/nfse/config.
// Password e Token chegam em claro e são cifrados antes da persistência;
// vazios preservam o segredo já gravado.
type UpsertNfseConfigRequest struct {
	ProviderCode     string          `json:"provider_code"`
	MunicipalityCode string          `json:"municipality_code"`
	Environment      string          `json:"environment"` // HOMOLOGATION | PRODUCTION
	Login            string          `json:"login"`
	Password         string          `json:"password,omitempty"`
	Token            string          `json:"token,omitempty"`
	CNAE             string          `json:"cnae,omitempty"`
	ServiceCode      string          `json:"service_code,omitempty"`
	ISSRate          decimal.Decimal `json:"iss_rate,omitempty"`
}

// NfseConfigResponse configuração com segredos mascarados (nunca em claro).
type NfseConfigResponse struct {
	ProviderCode     string          `json:"provider_code"`
	MunicipalityCode string          `json:"municipality_code"`
	Environment      string          `json:"environment"`
	Login            string          `json:"login"`
	Password         string          `json:"password,omitempty"` // sempre "********" quando definido
	Token            string          `json:"token,omitempty"`    // idem
	CNAE             string          `json:"cnae,omitempty"`
	ServiceCode      string          `json:"service_code,omitempty"`
	ISSRate          decimal.Decimal `json:"iss_rate"`
}

// CreateNfseRequest body para POST /api/fiscal/nfse.
type CreateNfseRequest struct {
	CustomerID     string          `json:"customer_id"`
	ServiceCode    string          `json:"service_code"`
	CNAE           string          `json:"cnae,omitempty"`
	Description    string          `json:"description"`
	CompetenceDate string          `json:"competence_date"` // AAAA-MM-DD
	ServiceValue   decimal.Decimal `json:"service_value"`
	DeductionValue decimal.Decimal `json:"deduction_value,omitempty"`
	ISSRate        decimal.Decimal `json:"iss_rate"`
	ISSWithheld    bool            `json:"iss_withheld,omitempty"`
	PISRate        decimal.Decimal `json:"pis_rate,omitempty"`
	COFINSRate     decimal.Decimal `json:"cofins_rate,omitempty"`
	IRRate         decimal.Decimal `json:"ir_rate,omitempty"`
	CSLLRate       decimal.Decimal `json:"csll_rate,omitempty"`
	INSSRate       decimal.Decimal `json:"inss_rate,omitempty"`
}

// CancelNfseRequest body para POST /api/fiscal/nfse/:id/cancel.
type CancelNfseRequest struct {
	Reason string `json:"reason"`
}

// ListNfseRequest query para GET /api/fiscal/nfse.
type ListNfseRequest struct {
	Status         string `query:"status"`
	CompetenceFrom string `query:"competence_from"` // AAAA-MM-DD
	CompetenceTo   string `query:"competence_to"`
	CustomerID     string `query:"customer_id"`
	PageRequest
}

// NfseResponse nota de serviço em respostas.
type NfseResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	Number         int64           `json:"number"`
	CustomerID     string          `json:"customer_id"`
	ServiceCode    string          `json:"service_code"`
	CNAE           string          `json:"cnae,omitempty"`
	Description    string          `json:"description"`
	CompetenceDate string          `json:"competence_date"`
	ServiceValue   decimal.Decimal `json:"service_value"`
	DeductionValue decimal.Decimal `json:"deduction_value"`
	BaseValue      decimal.Decimal `json:"base_value"`
	ISSRate        decimal.Decimal `json:"iss_rate"`
	ISSValue       decimal.Decimal `json:"iss_value"`
	ISSWithheld    bool            `json:"iss_withheld"`
	PISValue       decimal.Decimal `json:"pis_value"`
	COFINSValue    decimal.Decimal `json:"cofins_value"`
	IRValue        decimal.Decimal `json:"ir_value"`
	CSLLValue      decimal.Decimal `json:"csll_value"`
	INSSValue      decimal.Decimal `json:"inss_value"`
	NetValue       decimal.Decimal `json:"net_value"`
	Status         string          `json:"status"`
	CancelledAt    string          `json:"cancelled_at,omitempty"`
	CancelReason   string          `json:"cancel_reason,omitempty"`
}

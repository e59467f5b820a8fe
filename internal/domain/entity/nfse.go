package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ambientes de integração com a prefeitura.
const (
	NfseEnvHomologation = "HOMOLOGATION"
	NfseEnvProduction   = "PRODUCTION"
)

// Estados da NFS-e (espelha o ciclo da NFe usado no restante do sistema).
const (
	NfseStatusDraft      = "DRAFT"      // Gravada para reservar o número sequencial
	NfseStatusPending    = "PENDING"    // Em processamento na prefeitura
	NfseStatusAuthorized = "AUTHORIZED" // Autorizada pela prefeitura
	NfseStatusDenied     = "DENIED"     // Negada pela prefeitura (terminal)
	NfseStatusCancelled  = "CANCELLED"  // Cancelada (terminal, transição única)
)

// NfseConfig guarda as credenciais e parâmetros de integração municipal de uma
// empresa (uma linha por tenant, upsert). Password e Token são armazenados
// cifrados e nunca retornam em claro para o chamador.
type NfseConfig struct {
	ID               string
	CompanyID        string
	ProviderCode     string // Código do provedor municipal (GINFES, ISSNET, ...)
	MunicipalityCode string // Código IBGE do município
	Environment      string // HOMOLOGATION | PRODUCTION
	Login            string
	Password         string // cifrado (opaco para o motor)
	Token            string // cifrado (opaco para o motor)
	CNAE             string
	ServiceCode      string // Item da lista de serviços (LC 116)
	ISSRate          decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NfseIssued representa uma nota fiscal de serviço emitida para a prefeitura.
type NfseIssued struct {
	ID             string
	CompanyID      string
	Number         int64 // Sequencial por empresa
	CustomerID     string
	ServiceCode    string
	CNAE           string
	Description    string
	CompetenceDate time.Time
	ServiceValue   decimal.Decimal
	DeductionValue decimal.Decimal
	BaseValue      decimal.Decimal // ServiceValue - DeductionValue
	ISSRate        decimal.Decimal
	ISSValue       decimal.Decimal
	ISSWithheld    bool
	PISRate        decimal.Decimal
	PISValue       decimal.Decimal
	COFINSRate     decimal.Decimal
	COFINSValue    decimal.Decimal
	IRRate         decimal.Decimal
	IRValue        decimal.Decimal
	CSLLRate       decimal.Decimal
	CSLLValue      decimal.Decimal
	INSSRate       decimal.Decimal
	INSSValue      decimal.Decimal
	NetValue       decimal.Decimal
	Status         string
	CancelledAt    *time.Time
	CancelReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

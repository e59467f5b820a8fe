package entity

import "time"

// Estados do ciclo de vida de uma obrigação acessória.
//
//	PENDING → GENERATING → GENERATED → TRANSMITTED → ACCEPTED
//	                                   TRANSMITTED → REJECTED → RECTIFIED → GENERATING
const (
	ObligationStatusPending     = "PENDING"     // Criada pelo gerador do período, arquivo ainda não montado
	ObligationStatusGenerating  = "GENERATING"  // Montagem do arquivo em andamento
	ObligationStatusGenerated   = "GENERATED"   // Arquivo pronto, aguardando transmissão
	ObligationStatusTransmitted = "TRANSMITTED" // Enviada ao fisco, aguardando processamento
	ObligationStatusAccepted    = "ACCEPTED"    // Aceita pelo fisco (recibo disponível)
	ObligationStatusRejected    = "REJECTED"    // Rejeitada pelo fisco com mensagens de erro
	ObligationStatusRectified   = "RECTIFIED"   // Marcada para retificação; único caminho de volta a GENERATING
)

// FiscalObligation representa uma obrigação acessória devida em um período
// (companyId, code, year, month é chave natural; a linha nunca é excluída, serve de trilha de auditoria).
type FiscalObligation struct {
	ID            string
	CompanyID     string
	Code          string // SPED_FISCAL, EFD_REINF, ESOCIAL, ...
	Year          int
	Month         int
	DueDate       time.Time
	Status        string
	ReceiptNumber string // Recibo devolvido pelo fisco após aceite
	FileName      string
	FileContent   string // Conteúdo (ou referência) do arquivo gerado; opaco para o motor
	ErrorMessage  string // Mensagens de rejeição devolvidas pelo fisco
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

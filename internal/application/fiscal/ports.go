// Package fiscal contém os casos de uso do motor fiscal: obrigações
// acessórias, apuração, DIFAL, NFS-e e Bloco K.
package fiscal

import (
	"context"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade nas sequências
// ler-verificar-gravar (encerrar apuração, cancelar NFS-e, regerar Bloco K).
type TxRunner interface {
	RunApuration(ctx context.Context, fn func(repo repository.ApurationRepository) error) error
	RunNfse(ctx context.Context, fn func(repo repository.NfseRepository) error) error
	RunBlocoK(ctx context.Context, fn func(repo repository.BlocoKRepository) error) error
}

// Cipher cifra e decifra segredos de integração municipal. O motor trata o
// texto cifrado como opaco; a chave fica fora do domínio.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SummaryPDFGenerator gera a representação em PDF do resumo de apuração.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *dto.ApurationSummaryResponse) ([]byte, error)
}

// validatePeriod valida os limites do período fiscal: year em [2020,2100] e
// month em [1,12].
func validatePeriod(year, month int) error {
	if year < 2020 || year > 2100 {
		return domain.ErrInvalidInput
	}
	if month < 1 || month > 12 {
		return domain.ErrInvalidInput
	}
	return nil
}

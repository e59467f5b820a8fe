package fiscal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	domfiscal "github.com/tributa/fiscal-engine/internal/domain/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

// maskedSecret valor devolvido no lugar de qualquer segredo gravado.
const maskedSecret = "********"

// NfseUseCase gerencia a emissão e o cancelamento de notas de serviço e a
// configuração de integração municipal. Segredos só entram cifrados no banco
// e nunca saem em claro para o chamador.
type NfseUseCase struct {
	repo   repository.NfseRepository
	tx     TxRunner
	cipher Cipher
}

// NewNfseUseCase constrói o caso de uso.
func NewNfseUseCase(repo repository.NfseRepository, tx TxRunner, cipher Cipher) *NfseUseCase {
	return &NfseUseCase{repo: repo, tx: tx, cipher: cipher}
}

// GetConfig devolve a configuração municipal com os segredos mascarados.
func (uc *NfseUseCase) GetConfig(companyID string) (*dto.NfseConfigResponse, error) {
	cfg, err := uc.repo.GetConfig(companyID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}
	resp := &dto.NfseConfigResponse{
		ProviderCode:     cfg.ProviderCode,
		MunicipalityCode: cfg.MunicipalityCode,
		Environment:      cfg.Environment,
		Login:            cfg.Login,
		CNAE:             cfg.CNAE,
		ServiceCode:      cfg.ServiceCode,
		ISSRate:          cfg.ISSRate,
	}
	if cfg.Password != "" {
		resp.Password = maskedSecret
	}
	if cfg.Token != "" {
		resp.Token = maskedSecret
	}
	return resp, nil
}

// UpsertConfig grava a configuração municipal (uma linha por empresa).
// Password/Token em claro passam pelo Cipher antes de persistir; vazios
// preservam o segredo já gravado.
func (uc *NfseUseCase) UpsertConfig(companyID string, in dto.UpsertNfseConfigRequest) (*dto.NfseConfigResponse, error) {
	if in.ProviderCode == "" || in.MunicipalityCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Environment != entity.NfseEnvHomologation && in.Environment != entity.NfseEnvProduction {
		return nil, domain.ErrInvalidInput
	}
	if in.ISSRate.IsNegative() || in.ISSRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetConfig(companyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cfg := &entity.NfseConfig{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		ProviderCode:     in.ProviderCode,
		MunicipalityCode: in.MunicipalityCode,
		Environment:      in.Environment,
		Login:            in.Login,
		CNAE:             in.CNAE,
		ServiceCode:      in.ServiceCode,
		ISSRate:          in.ISSRate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		cfg.Password = existing.Password
		cfg.Token = existing.Token
	}
	if in.Password != "" {
		enc, err := uc.cipher.Encrypt(in.Password)
		if err != nil {
			return nil, err
		}
		cfg.Password = enc
	}
	if in.Token != "" {
		enc, err := uc.cipher.Encrypt(in.Token)
		if err != nil {
			return nil, err
		}
		cfg.Token = enc
	}
	if err := uc.repo.UpsertConfig(cfg); err != nil {
		return nil, err
	}
	return uc.GetConfig(companyID)
}

// Create calcula os valores da nota e a grava em DRAFT com o próximo número
// sequencial da empresa. Número e inserção rodam na mesma transação para não
// pular nem repetir sequenciais sob emissão concorrente.
func (uc *NfseUseCase) Create(ctx context.Context, companyID string, in dto.CreateNfseRequest) (*dto.NfseResponse, error) {
	if in.CustomerID == "" || in.ServiceCode == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	competence, err := time.Parse("2006-01-02", in.CompetenceDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	amounts, err := domfiscal.CalculateNfse(domfiscal.NfseInput{
		ServiceValue:   in.ServiceValue,
		DeductionValue: in.DeductionValue,
		ISSRate:        in.ISSRate,
		ISSWithheld:    in.ISSWithheld,
		PISRate:        in.PISRate,
		COFINSRate:     in.COFINSRate,
		IRRate:         in.IRRate,
		CSLLRate:       in.CSLLRate,
		INSSRate:       in.INSSRate,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nfse := &entity.NfseIssued{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		CustomerID:     in.CustomerID,
		ServiceCode:    in.ServiceCode,
		CNAE:           in.CNAE,
		Description:    in.Description,
		CompetenceDate: competence,
		ServiceValue:   in.ServiceValue,
		DeductionValue: in.DeductionValue,
		BaseValue:      amounts.BaseValue,
		ISSRate:        in.ISSRate,
		ISSValue:       amounts.ISSValue,
		ISSWithheld:    in.ISSWithheld,
		PISRate:        in.PISRate,
		PISValue:       amounts.PISValue,
		COFINSRate:     in.COFINSRate,
		COFINSValue:    amounts.COFINSValue,
		IRRate:         in.IRRate,
		IRValue:        amounts.IRValue,
		CSLLRate:       in.CSLLRate,
		CSLLValue:      amounts.CSLLValue,
		INSSRate:       in.INSSRate,
		INSSValue:      amounts.INSSValue,
		NetValue:       amounts.NetValue,
		Status:         entity.NfseStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunNfse(ctx, func(repo repository.NfseRepository) error {
		number, err := repo.NextNumber(companyID)
		if err != nil {
			return err
		}
		nfse.Number = number
		return repo.Create(nfse)
	})
	if err != nil {
		return nil, err
	}
	resp := nfseToResponse(nfse)
	return &resp, nil
}

// Get devolve uma nota do tenant.
func (uc *NfseUseCase) Get(companyID, id string) (*dto.NfseResponse, error) {
	nfse, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if nfse == nil {
		return nil, domain.ErrNotFound
	}
	resp := nfseToResponse(nfse)
	return &resp, nil
}

// Cancel cancela a nota exatamente uma vez. A leitura com trava e a gravação
// rodam na mesma transação: dois cancelamentos concorrentes nunca têm ambos
// sucesso. Nota de outro tenant responde ErrNotFound; já cancelada,
// ErrAlreadyCancelled.
func (uc *NfseUseCase) Cancel(ctx context.Context, companyID, id, reason string) (*dto.NfseResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp dto.NfseResponse
	err := uc.tx.RunNfse(ctx, func(repo repository.NfseRepository) error {
		nfse, err := repo.GetByIDForUpdate(companyID, id)
		if err != nil {
			return err
		}
		if nfse == nil {
			return domain.ErrNotFound
		}
		if nfse.Status == entity.NfseStatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		now := time.Now()
		nfse.Status = entity.NfseStatusCancelled
		nfse.CancelledAt = &now
		nfse.CancelReason = reason
		nfse.UpdatedAt = now
		if err := repo.Update(nfse); err != nil {
			return err
		}
		resp = nfseToResponse(nfse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lista as notas da empresa com filtros de status, competência e cliente.
func (uc *NfseUseCase) List(companyID string, in dto.ListNfseRequest) ([]dto.NfseResponse, error) {
	if in.Status != "" && !validNfseStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()
	filter := repository.NfseFilter{
		Status:     in.Status,
		CustomerID: in.CustomerID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.CompetenceFrom != "" {
		from, err := time.Parse("2006-01-02", in.CompetenceFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.CompetenceFrom = &from
	}
	if in.CompetenceTo != "" {
		to, err := time.Parse("2006-01-02", in.CompetenceTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.CompetenceTo = &to
	}

	list, err := uc.repo.List(companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NfseResponse, 0, len(list))
	for _, nfse := range list {
		out = append(out, nfseToResponse(nfse))
	}
	return out, nil
}

func validNfseStatus(status string) bool {
	switch status {
	case entity.NfseStatusDraft, entity.NfseStatusPending, entity.NfseStatusAuthorized,
		entity.NfseStatusDenied, entity.NfseStatusCancelled:
		return true
	}
	return false
}

func nfseToResponse(n *entity.NfseIssued) dto.NfseResponse {
	resp := dto.NfseResponse{
		ID:             n.ID,
		CompanyID:      n.CompanyID,
		Number:         n.Number,
		CustomerID:     n.CustomerID,
		ServiceCode:    n.ServiceCode,
		CNAE:           n.CNAE,
		Description:    n.Description,
		CompetenceDate: n.CompetenceDate.Format("2006-01-02"),
		ServiceValue:   n.ServiceValue,
		DeductionValue: n.DeductionValue,
		BaseValue:      n.BaseValue,
		ISSRate:        n.ISSRate,
		ISSValue:       n.ISSValue,
		ISSWithheld:    n.ISSWithheld,
		PISValue:       n.PISValue,
		COFINSValue:    n.COFINSValue,
		IRValue:        n.IRValue,
		CSLLValue:      n.CSLLValue,
		INSSValue:      n.INSSValue,
		NetValue:       n.NetValue,
		Status:         n.Status,
		CancelReason:   n.CancelReason,
	}
	if n.CancelledAt != nil {
		resp.CancelledAt = n.CancelledAt.Format(time.RFC3339)
	}
	return resp
}

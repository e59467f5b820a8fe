package fiscal

import (
	"time"

	"github.com/google/uuid"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	domfiscal "github.com/tributa/fiscal-engine/internal/domain/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

// DifalUseCase calcula e arquiva o diferencial de alíquota interestadual.
// Cada cálculo vira um registro de auditoria imutável.
type DifalUseCase struct {
	repo repository.DifalRepository
}

// NewDifalUseCase constrói o caso de uso.
func NewDifalUseCase(repo repository.DifalRepository) *DifalUseCase {
	return &DifalUseCase{repo: repo}
}

// Calculate executa o cálculo puro e persiste o resultado.
func (uc *DifalUseCase) Calculate(companyID string, in dto.CalculateDifalRequest) (*dto.DifalResponse, error) {
	if in.DocumentType == "" {
		return nil, domain.ErrInvalidInput
	}
	result, err := domfiscal.CalculateDifal(domfiscal.DifalInput{
		UFOrigem:        in.UFOrigem,
		UFDestino:       in.UFDestino,
		ProductValue:    in.ProductValue,
		ICMSOrigemRate:  in.ICMSOrigemRate,
		ICMSDestinoRate: in.ICMSDestinoRate,
		FCPRate:         in.FCPRate,
	})
	if err != nil {
		return nil, err
	}

	calc := &entity.DifalCalculation{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		DocumentType:     in.DocumentType,
		DocumentID:       in.DocumentID,
		DocumentNumber:   in.DocumentNumber,
		UFOrigem:         in.UFOrigem,
		UFDestino:        in.UFDestino,
		ProductValue:     in.ProductValue,
		ICMSOrigemRate:   in.ICMSOrigemRate,
		ICMSDestinoRate:  in.ICMSDestinoRate,
		FCPRate:          in.FCPRate,
		ICMSOrigemValue:  result.ICMSOrigemValue,
		ICMSDestinoValue: result.ICMSDestinoValue,
		DifalValue:       result.DifalValue,
		FCPValue:         result.FCPValue,
		TotalValue:       result.TotalValue,
		CreatedAt:        time.Now(),
	}
	if err := uc.repo.Create(calc); err != nil {
		return nil, err
	}
	resp := difalToResponse(calc)
	return &resp, nil
}

// List lista os cálculos arquivados, opcionalmente por par de UFs.
// Limite entre 1 e 100 (padrão 50).
func (uc *DifalUseCase) List(companyID string, in dto.ListDifalRequest) ([]dto.DifalResponse, error) {
	if in.UFOrigem != "" && !domfiscal.ValidUF(in.UFOrigem) {
		return nil, domain.ErrUnknownUF
	}
	if in.UFDestino != "" && !domfiscal.ValidUF(in.UFDestino) {
		return nil, domain.ErrUnknownUF
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	list, err := uc.repo.List(companyID, in.UFOrigem, in.UFDestino, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DifalResponse, 0, len(list))
	for _, calc := range list {
		out = append(out, difalToResponse(calc))
	}
	return out, nil
}

func difalToResponse(calc *entity.DifalCalculation) dto.DifalResponse {
	return dto.DifalResponse{
		ID:               calc.ID,
		DocumentType:     calc.DocumentType,
		DocumentNumber:   calc.DocumentNumber,
		UFOrigem:         calc.UFOrigem,
		UFDestino:        calc.UFDestino,
		ProductValue:     calc.ProductValue,
		ICMSOrigemRate:   calc.ICMSOrigemRate,
		ICMSDestinoRate:  calc.ICMSDestinoRate,
		FCPRate:          calc.FCPRate,
		ICMSOrigemValue:  calc.ICMSOrigemValue,
		ICMSDestinoValue: calc.ICMSDestinoValue,
		DifalValue:       calc.DifalValue,
		FCPValue:         calc.FCPValue,
		TotalValue:       calc.TotalValue,
		CreatedAt:        calc.CreatedAt.Format(time.RFC3339),
	}
}

package fiscal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	domfiscal "github.com/tributa/fiscal-engine/internal/domain/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
	"github.com/tributa/fiscal-engine/pkg/logger"
)

// BlocoKUseCase deriva os registros do Bloco K a partir das movimentações de
// estoque e produção do período. A regeração substitui integralmente o
// conjunto anterior do período (sem merge incremental) para que a saída sempre
// reflita os dados-fonte atuais.
type BlocoKUseCase struct {
	repo   repository.BlocoKRepository
	source repository.StockSourceRepository
	tx     TxRunner
	log    *logger.Logger
}

// NewBlocoKUseCase constrói o caso de uso.
func NewBlocoKUseCase(repo repository.BlocoKRepository, source repository.StockSourceRepository, tx TxRunner, log *logger.Logger) *BlocoKUseCase {
	return &BlocoKUseCase{repo: repo, source: source, tx: tx, log: log}
}

// Generate regera os registros do Bloco K do período.
func (uc *BlocoKUseCase) Generate(ctx context.Context, companyID string, in dto.GenerateBlocoKRequest) ([]dto.BlocoKRecordResponse, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}

	from := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	movements, err := uc.source.ListMovements(companyID, from, to)
	if err != nil {
		return nil, err
	}
	balances, err := uc.source.ListBalances(companyID, to)
	if err != nil {
		return nil, err
	}

	records := domfiscal.DeriveBlocoKRecords(companyID, in.Year, in.Month, movements, balances)
	now := time.Now()
	for _, r := range records {
		r.ID = uuid.New().String()
		r.CreatedAt = now
	}

	// Substituição total do período: delete + insert em lote na mesma tx.
	err = uc.tx.RunBlocoK(ctx, func(repo repository.BlocoKRepository) error {
		if err := repo.DeleteByPeriod(companyID, in.Year, in.Month); err != nil {
			return err
		}
		return repo.CreateBatch(records)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Int("year", in.Year).Int("month", in.Month).
		Int("records", len(records)).
		Msg("bloco K regenerado")
	return blocoKToResponses(records), nil
}

// List lista os registros gerados do período (recordType vazio = todos).
func (uc *BlocoKUseCase) List(companyID string, in dto.ListBlocoKRequest) ([]dto.BlocoKRecordResponse, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	if in.RecordType != "" && !validBlocoKRecordType(in.RecordType) {
		return nil, domain.ErrInvalidInput
	}
	records, err := uc.repo.ListByPeriod(companyID, in.Year, in.Month, in.RecordType)
	if err != nil {
		return nil, err
	}
	return blocoKToResponses(records), nil
}

func validBlocoKRecordType(recordType string) bool {
	switch recordType {
	case entity.BlocoKRecordStock, entity.BlocoKRecordOtherMov,
		entity.BlocoKRecordProduction, entity.BlocoKRecordConsumption:
		return true
	}
	return false
}

func blocoKToResponses(records []*entity.BlocoKRecord) []dto.BlocoKRecordResponse {
	out := make([]dto.BlocoKRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.BlocoKRecordResponse{
			ID:           r.ID,
			RecordType:   r.RecordType,
			ProductCode:  r.ProductCode,
			Description:  r.Description,
			MovementDate: r.MovementDate.Format("2006-01-02"),
			Quantity:     r.Quantity,
		})
	}
	return out
}

package fiscal

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	domfiscal "github.com/tributa/fiscal-engine/internal/domain/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

// ApurationUseCase mantém o livro de apuração por imposto e período.
// Toda mutação de totais roda dentro de uma transação: os totais são sempre
// recomputados a partir do conjunto completo de itens (nunca incremento sobre
// snapshot velho), o que tolera inserções concorrentes.
type ApurationUseCase struct {
	repo repository.ApurationRepository
	tx   TxRunner
	pdf  SummaryPDFGenerator
}

// NewApurationUseCase constrói o caso de uso.
func NewApurationUseCase(repo repository.ApurationRepository, tx TxRunner, pdf SummaryPDFGenerator) *ApurationUseCase {
	return &ApurationUseCase{repo: repo, tx: tx, pdf: pdf}
}

// GetOrCreate busca a apuração única de (companyID, taxType, year, month),
// criando uma vazia e aberta se não existir. Upsert puro, sem cálculo.
func (uc *ApurationUseCase) GetOrCreate(companyID string, in dto.GetOrCreateApurationRequest) (*dto.ApurationResponse, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	if !domfiscal.ValidTaxType(in.TaxType) {
		return nil, domain.ErrInvalidInput
	}

	ap, err := uc.repo.GetByKey(companyID, in.TaxType, in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		now := time.Now()
		ap = &entity.TaxApuration{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			TaxType:     in.TaxType,
			Year:        in.Year,
			Month:       in.Month,
			TotalCredit: decimal.Zero,
			TotalDebit:  decimal.Zero,
			Balance:     decimal.Zero,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.repo.Create(ap); err != nil {
			// Criação concorrente: a constraint única decide.
			if errors.Is(err, domain.ErrDuplicate) {
				ap, err = uc.repo.GetByKey(companyID, in.TaxType, in.Year, in.Month)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	}
	resp := apurationToResponse(ap, nil)
	return &resp, nil
}

// AddItem adiciona um lançamento e recomputa os totais na mesma transação que
// insere o item. Falha com ErrInvalidState se a apuração já foi encerrada e
// com ErrNotFound se a apuração não pertence ao tenant.
func (uc *ApurationUseCase) AddItem(ctx context.Context, companyID, apurationID string, in dto.AddApurationItemRequest) (*dto.ApurationResponse, error) {
	item := &entity.ApurationItem{
		ID:             uuid.New().String(),
		ApurationID:    apurationID,
		DocumentType:   in.DocumentType,
		DocumentID:     in.DocumentID,
		DocumentNumber: in.DocumentNumber,
		CFOP:           in.CFOP,
		BaseValue:      in.BaseValue,
		Rate:           in.Rate,
		TaxValue:       in.TaxValue,
		Nature:         in.Nature,
		Description:    in.Description,
		CreatedAt:      time.Now(),
	}
	if err := domfiscal.ValidateApurationItem(item); err != nil {
		return nil, err
	}

	var resp dto.ApurationResponse
	err := uc.tx.RunApuration(ctx, func(repo repository.ApurationRepository) error {
		ap, err := repo.GetByIDForUpdate(companyID, apurationID)
		if err != nil {
			return err
		}
		if ap == nil {
			return domain.ErrNotFound
		}
		if ap.Closed() {
			return domain.ErrInvalidState
		}
		if err := repo.CreateItem(item); err != nil {
			return err
		}
		items, err := repo.ListItems(ap.ID)
		if err != nil {
			return err
		}
		totals := domfiscal.CalculateBalance(items)
		ap.TotalCredit = totals.TotalCredit
		ap.TotalDebit = totals.TotalDebit
		ap.Balance = totals.Balance
		ap.UpdatedAt = time.Now()
		if err := repo.UpdateTotals(ap); err != nil {
			return err
		}
		resp = apurationToResponse(ap, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Close encerra a apuração do período. Irreversível pela API normal: depois
// do encerramento AddItem para essa chave sempre falha com ErrInvalidState.
func (uc *ApurationUseCase) Close(ctx context.Context, companyID string, in dto.CloseApurationRequest) (*dto.ApurationResponse, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	if !domfiscal.ValidTaxType(in.TaxType) {
		return nil, domain.ErrInvalidInput
	}

	var resp dto.ApurationResponse
	err := uc.tx.RunApuration(ctx, func(repo repository.ApurationRepository) error {
		ap, err := repo.GetByKeyForUpdate(companyID, in.TaxType, in.Year, in.Month)
		if err != nil {
			return err
		}
		if ap == nil {
			return domain.ErrNotFound
		}
		if ap.Closed() {
			return domain.ErrInvalidState
		}
		now := time.Now()
		ap.ClosedAt = &now
		ap.UpdatedAt = now
		if err := repo.SetClosed(ap); err != nil {
			return err
		}
		resp = apurationToResponse(ap, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lista as apurações do período (taxType vazio = todos), com itens.
func (uc *ApurationUseCase) List(companyID string, year, month int, taxType string) ([]dto.ApurationResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	if taxType != "" && !domfiscal.ValidTaxType(taxType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByPeriod(companyID, year, month, taxType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApurationResponse, 0, len(list))
	for _, ap := range list {
		items, err := uc.repo.ListItems(ap.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, apurationToResponse(ap, items))
	}
	return out, nil
}

// Summary agrega créditos, débitos e saldo por tipo de imposto e no total do
// período. Somente leitura.
func (uc *ApurationUseCase) Summary(companyID string, year, month int) (*dto.ApurationSummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByPeriod(companyID, year, month, "")
	if err != nil {
		return nil, err
	}

	out := &dto.ApurationSummaryResponse{
		Year:        year,
		Month:       month,
		ByTaxType:   make([]dto.ApurationSummaryLine, 0, len(list)),
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		Balance:     decimal.Zero,
	}
	for _, ap := range list {
		out.ByTaxType = append(out.ByTaxType, dto.ApurationSummaryLine{
			TaxType:     ap.TaxType,
			Status:      ap.Status(),
			TotalCredit: ap.TotalCredit,
			TotalDebit:  ap.TotalDebit,
			Balance:     ap.Balance,
		})
		out.TotalCredit = out.TotalCredit.Add(ap.TotalCredit)
		out.TotalDebit = out.TotalDebit.Add(ap.TotalDebit)
		out.Balance = out.Balance.Add(ap.Balance)
	}
	sort.Slice(out.ByTaxType, func(i, j int) bool {
		return out.ByTaxType[i].TaxType < out.ByTaxType[j].TaxType
	})
	return out, nil
}

// SummaryPDF gera a representação em PDF do resumo do período.
func (uc *ApurationUseCase) SummaryPDF(ctx context.Context, companyID string, year, month int) ([]byte, error) {
	summary, err := uc.Summary(companyID, year, month)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSummaryPDF(ctx, summary)
}

func apurationToResponse(ap *entity.TaxApuration, items []*entity.ApurationItem) dto.ApurationResponse {
	resp := dto.ApurationResponse{
		ID:          ap.ID,
		CompanyID:   ap.CompanyID,
		TaxType:     ap.TaxType,
		Year:        ap.Year,
		Month:       ap.Month,
		Status:      ap.Status(),
		TotalCredit: ap.TotalCredit,
		TotalDebit:  ap.TotalDebit,
		Balance:     ap.Balance,
	}
	if ap.ClosedAt != nil {
		resp.ClosedAt = ap.ClosedAt.Format(time.RFC3339)
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.ApurationItemResponse{
			ID:             it.ID,
			DocumentType:   it.DocumentType,
			DocumentID:     it.DocumentID,
			DocumentNumber: it.DocumentNumber,
			CFOP:           it.CFOP,
			BaseValue:      it.BaseValue,
			Rate:           it.Rate,
			TaxValue:       it.TaxValue,
			Nature:         it.Nature,
			Description:    it.Description,
		})
	}
	return resp
}

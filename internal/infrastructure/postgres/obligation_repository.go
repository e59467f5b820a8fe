package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

var _ repository.ObligationRepository = (*ObligationRepo)(nil)

// ObligationRepo implementação de ObligationRepository sobre PostgreSQL
// (usável com pool ou tx).
type ObligationRepo struct {
	q Querier
}

// NewObligationRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewObligationRepository(q Querier) *ObligationRepo {
	return &ObligationRepo{q: q}
}

const obligationColumns = `id, company_id, code, year, month, due_date, status,
	       COALESCE(receipt_number, ''), COALESCE(file_name, ''), COALESCE(file_content, ''),
	       COALESCE(error_message, ''), created_at, updated_at`

// Create insere a obrigação. A chave natural (company_id, code, year, month)
// tem constraint única; violação vira domain.ErrDuplicate para o gerador
// tratar a corrida entre requisições concorrentes do mesmo período.
func (r *ObligationRepo) Create(o *entity.FiscalObligation) error {
	query := `
		INSERT INTO fiscal_obligations (id, company_id, code, year, month, due_date, status,
			receipt_number, file_name, file_content, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CompanyID, o.Code, o.Year, o.Month, o.DueDate, o.Status,
		nullIfEmpty(o.ReceiptNumber), nullIfEmpty(o.FileName), nullIfEmpty(o.FileContent),
		nullIfEmpty(o.ErrorMessage), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert obligation: %w", err)
	}
	return nil
}

// Update grava status e campos de resultado da transição.
func (r *ObligationRepo) Update(o *entity.FiscalObligation) error {
	query := `
		UPDATE fiscal_obligations
		SET status         = $2,
		    receipt_number = COALESCE($3, receipt_number),
		    file_name      = COALESCE($4, file_name),
		    file_content   = COALESCE($5, file_content),
		    error_message  = COALESCE($6, error_message),
		    updated_at     = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.Status,
		nullIfEmpty(o.ReceiptNumber), nullIfEmpty(o.FileName), nullIfEmpty(o.FileContent),
		nullIfEmpty(o.ErrorMessage), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update obligation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID busca a obrigação por id dentro do tenant.
func (r *ObligationRepo) GetByID(companyID, id string) (*entity.FiscalObligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM fiscal_obligations WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetByNaturalKey busca pela chave natural (companyID, code, year, month).
func (r *ObligationRepo) GetByNaturalKey(companyID, code string, year, month int) (*entity.FiscalObligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM fiscal_obligations
		WHERE company_id = $1 AND code = $2 AND year = $3 AND month = $4`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, code, year, month))
}

// ListByPeriod lista as obrigações do período; status vazio não filtra.
func (r *ObligationRepo) ListByPeriod(companyID string, year, month int, status string) ([]*entity.FiscalObligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM fiscal_obligations
		WHERE company_id = $1 AND year = $2 AND month = $3
		  AND ($4 = '' OR status = $4)
		ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, companyID, year, month, status)
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}
	defer rows.Close()
	var list []*entity.FiscalObligation
	for rows.Next() {
		var o entity.FiscalObligation
		if err := rows.Scan(
			&o.ID, &o.CompanyID, &o.Code, &o.Year, &o.Month, &o.DueDate, &o.Status,
			&o.ReceiptNumber, &o.FileName, &o.FileContent, &o.ErrorMessage,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *ObligationRepo) scanOne(row pgx.Row) (*entity.FiscalObligation, error) {
	var o entity.FiscalObligation
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.Code, &o.Year, &o.Month, &o.DueDate, &o.Status,
		&o.ReceiptNumber, &o.FileName, &o.FileContent, &o.ErrorMessage,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obligation: %w", err)
	}
	return &o, nil
}

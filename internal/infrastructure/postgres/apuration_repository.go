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

var _ repository.ApurationRepository = (*ApurationRepo)(nil)

// ApurationRepo implementação de ApurationRepository sobre PostgreSQL
// (usável com pool ou tx). Os métodos *ForUpdate travam a linha e devem
// rodar dentro do TxRunner.
type ApurationRepo struct {
	q Querier
}

// NewApurationRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewApurationRepository(q Querier) *ApurationRepo {
	return &ApurationRepo{q: q}
}

const apurationColumns = `id, company_id, tax_type, year, month,
	       total_credit, total_debit, balance, closed_at, created_at, updated_at`

// Create insere a apuração. Chave natural (company_id, tax_type, year, month)
// única; violação vira domain.ErrDuplicate.
func (r *ApurationRepo) Create(a *entity.TaxApuration) error {
	query := `
		INSERT INTO tax_apurations (id, company_id, tax_type, year, month,
			total_credit, total_debit, balance, closed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.TaxType, a.Year, a.Month,
		a.TotalCredit, a.TotalDebit, a.Balance, a.ClosedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert apuration: %w", err)
	}
	return nil
}

// GetByKey busca a apuração pela chave natural.
func (r *ApurationRepo) GetByKey(companyID, taxType string, year, month int) (*entity.TaxApuration, error) {
	query := `
		SELECT ` + apurationColumns + `
		FROM tax_apurations
		WHERE company_id = $1 AND tax_type = $2 AND year = $3 AND month = $4`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, taxType, year, month))
}

// GetByKeyForUpdate busca pela chave natural travando a linha (SELECT FOR UPDATE).
func (r *ApurationRepo) GetByKeyForUpdate(companyID, taxType string, year, month int) (*entity.TaxApuration, error) {
	query := `
		SELECT ` + apurationColumns + `
		FROM tax_apurations
		WHERE company_id = $1 AND tax_type = $2 AND year = $3 AND month = $4
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, taxType, year, month))
}

// GetByIDForUpdate busca por id dentro do tenant travando a linha.
func (r *ApurationRepo) GetByIDForUpdate(companyID, id string) (*entity.TaxApuration, error) {
	query := `
		SELECT ` + apurationColumns + `
		FROM tax_apurations
		WHERE company_id = $1 AND id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// UpdateTotals persiste os totais recomputados a partir do conjunto completo de itens.
func (r *ApurationRepo) UpdateTotals(a *entity.TaxApuration) error {
	query := `
		UPDATE tax_apurations
		SET total_credit = $2, total_debit = $3, balance = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.TotalCredit, a.TotalDebit, a.Balance, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update apuration totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetClosed grava o timestamp de encerramento.
func (r *ApurationRepo) SetClosed(a *entity.TaxApuration) error {
	query := `
		UPDATE tax_apurations
		SET closed_at = $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, a.ID, a.ClosedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("close apuration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem insere um lançamento de crédito/débito.
func (r *ApurationRepo) CreateItem(item *entity.ApurationItem) error {
	query := `
		INSERT INTO apuration_items (id, apuration_id, document_type, document_id,
			document_number, cfop, base_value, rate, tax_value, nature, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ApurationID, item.DocumentType, nullIfEmpty(item.DocumentID),
		nullIfEmpty(item.DocumentNumber), nullIfEmpty(item.CFOP),
		item.BaseValue, item.Rate, item.TaxValue, item.Nature,
		nullIfEmpty(item.Description), item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert apuration item: %w", err)
	}
	return nil
}

// ListItems devolve todos os itens da apuração em ordem de criação.
func (r *ApurationRepo) ListItems(apurationID string) ([]*entity.ApurationItem, error) {
	query := `
		SELECT id, apuration_id, document_type, COALESCE(document_id, ''),
		       COALESCE(document_number, ''), COALESCE(cfop, ''),
		       base_value, rate, tax_value, nature, COALESCE(description, ''), created_at
		FROM apuration_items WHERE apuration_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, apurationID)
	if err != nil {
		return nil, fmt.Errorf("list apuration items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ApurationItem
	for rows.Next() {
		var it entity.ApurationItem
		if err := rows.Scan(
			&it.ID, &it.ApurationID, &it.DocumentType, &it.DocumentID,
			&it.DocumentNumber, &it.CFOP, &it.BaseValue, &it.Rate, &it.TaxValue,
			&it.Nature, &it.Description, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan apuration item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByPeriod lista as apurações do período; taxType vazio não filtra.
func (r *ApurationRepo) ListByPeriod(companyID string, year, month int, taxType string) ([]*entity.TaxApuration, error) {
	query := `
		SELECT ` + apurationColumns + `
		FROM tax_apurations
		WHERE company_id = $1 AND year = $2 AND month = $3
		  AND ($4 = '' OR tax_type = $4)
		ORDER BY tax_type`
	rows, err := r.q.Query(context.Background(), query, companyID, year, month, taxType)
	if err != nil {
		return nil, fmt.Errorf("list apurations: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaxApuration
	for rows.Next() {
		var a entity.TaxApuration
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.TaxType, &a.Year, &a.Month,
			&a.TotalCredit, &a.TotalDebit, &a.Balance, &a.ClosedAt,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan apuration: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *ApurationRepo) scanOne(row pgx.Row) (*entity.TaxApuration, error) {
	var a entity.TaxApuration
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.TaxType, &a.Year, &a.Month,
		&a.TotalCredit, &a.TotalDebit, &a.Balance, &a.ClosedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get apuration: %w", err)
	}
	return &a, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

var _ repository.BlocoKRepository = (*BlocoKRepo)(nil)

// BlocoKRepo implementação de BlocoKRepository sobre PostgreSQL (usável com
// pool ou tx). A regeração (DeleteByPeriod + CreateBatch) deve rodar dentro
// do TxRunner.
type BlocoKRepo struct {
	q Querier
}

// NewBlocoKRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewBlocoKRepository(q Querier) *BlocoKRepo {
	return &BlocoKRepo{q: q}
}

// DeleteByPeriod remove todos os registros do período antes da regeração.
func (r *BlocoKRepo) DeleteByPeriod(companyID string, year, month int) error {
	query := `DELETE FROM bloco_k_records WHERE company_id = $1 AND year = $2 AND month = $3`
	_, err := r.q.Exec(context.Background(), query, companyID, year, month)
	if err != nil {
		return fmt.Errorf("delete bloco k period: %w", err)
	}
	return nil
}

// CreateBatch insere o conjunto regenerado do período.
func (r *BlocoKRepo) CreateBatch(records []*entity.BlocoKRecord) error {
	query := `
		INSERT INTO bloco_k_records (id, company_id, year, month, record_type,
			product_code, description, movement_date, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, rec := range records {
		_, err := r.q.Exec(context.Background(), query,
			rec.ID, rec.CompanyID, rec.Year, rec.Month, rec.RecordType,
			rec.ProductCode, rec.Description, rec.MovementDate, rec.Quantity, rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert bloco k record: %w", err)
		}
	}
	return nil
}

// ListByPeriod lista os registros do período; recordType vazio não filtra.
func (r *BlocoKRepo) ListByPeriod(companyID string, year, month int, recordType string) ([]*entity.BlocoKRecord, error) {
	query := `
		SELECT id, company_id, year, month, record_type, product_code, description,
		       movement_date, quantity, created_at
		FROM bloco_k_records
		WHERE company_id = $1 AND year = $2 AND month = $3
		  AND ($4 = '' OR record_type = $4)
		ORDER BY record_type, movement_date, product_code`
	rows, err := r.q.Query(context.Background(), query, companyID, year, month, recordType)
	if err != nil {
		return nil, fmt.Errorf("list bloco k records: %w", err)
	}
	defer rows.Close()
	var list []*entity.BlocoKRecord
	for rows.Next() {
		var rec entity.BlocoKRecord
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.Year, &rec.Month, &rec.RecordType,
			&rec.ProductCode, &rec.Description, &rec.MovementDate, &rec.Quantity, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bloco k record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

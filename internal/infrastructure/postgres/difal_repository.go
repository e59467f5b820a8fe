package postgres

import (
	"context"
	"fmt"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

var _ repository.DifalRepository = (*DifalRepo)(nil)

// DifalRepo implementação de DifalRepository sobre PostgreSQL. Só insere e lê:
// o registro de auditoria é imutável.
type DifalRepo struct {
	q Querier
}

// NewDifalRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDifalRepository(q Querier) *DifalRepo {
	return &DifalRepo{q: q}
}

// Create persiste o registro de auditoria do cálculo.
func (r *DifalRepo) Create(calc *entity.DifalCalculation) error {
	query := `
		INSERT INTO difal_calculations (id, company_id, document_type, document_id,
			document_number, uf_origem, uf_destino, product_value,
			icms_origem_rate, icms_destino_rate, fcp_rate,
			icms_origem_value, icms_destino_value, difal_value, fcp_value, total_value,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		calc.ID, calc.CompanyID, calc.DocumentType, nullIfEmpty(calc.DocumentID),
		nullIfEmpty(calc.DocumentNumber), calc.UFOrigem, calc.UFDestino, calc.ProductValue,
		calc.ICMSOrigemRate, calc.ICMSDestinoRate, calc.FCPRate,
		calc.ICMSOrigemValue, calc.ICMSDestinoValue, calc.DifalValue, calc.FCPValue, calc.TotalValue,
		calc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert difal calculation: %w", err)
	}
	return nil
}

// List devolve os cálculos mais recentes primeiro; ufOrigem/ufDestino vazios não filtram.
func (r *DifalRepo) List(companyID, ufOrigem, ufDestino string, limit int) ([]*entity.DifalCalculation, error) {
	query := `
		SELECT id, company_id, document_type, COALESCE(document_id, ''),
		       COALESCE(document_number, ''), uf_origem, uf_destino, product_value,
		       icms_origem_rate, icms_destino_rate, fcp_rate,
		       icms_origem_value, icms_destino_value, difal_value, fcp_value, total_value,
		       created_at
		FROM difal_calculations
		WHERE company_id = $1
		  AND ($2 = '' OR uf_origem = $2)
		  AND ($3 = '' OR uf_destino = $3)
		ORDER BY created_at DESC
		LIMIT $4`
	rows, err := r.q.Query(context.Background(), query, companyID, ufOrigem, ufDestino, limit)
	if err != nil {
		return nil, fmt.Errorf("list difal calculations: %w", err)
	}
	defer rows.Close()
	var list []*entity.DifalCalculation
	for rows.Next() {
		var c entity.DifalCalculation
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.DocumentType, &c.DocumentID,
			&c.DocumentNumber, &c.UFOrigem, &c.UFDestino, &c.ProductValue,
			&c.ICMSOrigemRate, &c.ICMSDestinoRate, &c.FCPRate,
			&c.ICMSOrigemValue, &c.ICMSDestinoValue, &c.DifalValue, &c.FCPValue, &c.TotalValue,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan difal calculation: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

var _ repository.StockSourceRepository = (*StockSourceRepo)(nil)

// StockSourceRepo lê as movimentações e saldos de estoque gravados pelo módulo
// de inventário. Somente leitura: o motor fiscal nunca escreve nessas tabelas.
type StockSourceRepo struct {
	q Querier
}

// NewStockSourceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockSourceRepository(q Querier) *StockSourceRepo {
	return &StockSourceRepo{q: q}
}

// ListMovements devolve as movimentações do intervalo [from, to].
func (r *StockSourceRepo) ListMovements(companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, product_code, COALESCE(description, ''), type, quantity, date
		FROM stock_movements
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, id`
	rows, err := r.q.Query(context.Background(), query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductCode, &m.Description, &m.Type, &m.Quantity, &m.Date); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListBalances devolve o saldo de cada produto na data de corte (última
// posição registrada até a data).
func (r *StockSourceRepo) ListBalances(companyID string, at time.Time) ([]*entity.StockBalance, error) {
	query := `
		SELECT DISTINCT ON (product_code)
		       company_id, product_code, COALESCE(description, ''), quantity, date
		FROM stock_balances
		WHERE company_id = $1 AND date <= $2
		ORDER BY product_code, date DESC`
	rows, err := r.q.Query(context.Background(), query, companyID, at)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.CompanyID, &b.ProductCode, &b.Description, &b.Quantity, &b.Date); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

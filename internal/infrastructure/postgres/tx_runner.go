package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

var _ fiscal.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunApuration roda fn com um ApurationRepository atado à transação.
func (r *TxRunner) RunApuration(ctx context.Context, fn func(repo repository.ApurationRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewApurationRepository(q))
	})
}

// RunNfse roda fn com um NfseRepository atado à transação.
func (r *TxRunner) RunNfse(ctx context.Context, fn func(repo repository.NfseRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewNfseRepository(q))
	})
}

// RunBlocoK roda fn com um BlocoKRepository atado à transação.
func (r *TxRunner) RunBlocoK(ctx context.Context, fn func(repo repository.BlocoKRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewBlocoKRepository(q))
	})
}

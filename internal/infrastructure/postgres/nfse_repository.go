package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
)

var _ repository.NfseRepository = (*NfseRepo)(nil)

// NfseRepo implementação de NfseRepository sobre PostgreSQL (usável com pool
// ou tx). NextNumber e Create devem rodar na mesma transação via TxRunner.
type NfseRepo struct {
	q Querier
}

// NewNfseRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNfseRepository(q Querier) *NfseRepo {
	return &NfseRepo{q: q}
}

// GetConfig busca a configuração municipal do tenant (uma linha por empresa).
func (r *NfseRepo) GetConfig(companyID string) (*entity.NfseConfig, error) {
	query := `
		SELECT id, company_id, provider_code, municipality_code, environment,
		       COALESCE(login, ''), COALESCE(password_enc, ''), COALESCE(token_enc, ''),
		       COALESCE(cnae, ''), COALESCE(service_code, ''), iss_rate,
		       created_at, updated_at
		FROM nfse_configs WHERE company_id = $1`
	var cfg entity.NfseConfig
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&cfg.ID, &cfg.CompanyID, &cfg.ProviderCode, &cfg.MunicipalityCode, &cfg.Environment,
		&cfg.Login, &cfg.Password, &cfg.Token,
		&cfg.CNAE, &cfg.ServiceCode, &cfg.ISSRate,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfse config: %w", err)
	}
	return &cfg, nil
}

// UpsertConfig insere ou atualiza a configuração municipal (por company_id).
func (r *NfseRepo) UpsertConfig(cfg *entity.NfseConfig) error {
	query := `
		INSERT INTO nfse_configs (id, company_id, provider_code, municipality_code, environment,
			login, password_enc, token_enc, cnae, service_code, iss_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id)
		DO UPDATE SET provider_code     = EXCLUDED.provider_code,
		              municipality_code = EXCLUDED.municipality_code,
		              environment       = EXCLUDED.environment,
		              login             = EXCLUDED.login,
		              password_enc      = EXCLUDED.password_enc,
		              token_enc         = EXCLUDED.token_enc,
		              cnae              = EXCLUDED.cnae,
		              service_code      = EXCLUDED.service_code,
		              iss_rate          = EXCLUDED.iss_rate,
		              updated_at        = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		cfg.ID, cfg.CompanyID, cfg.ProviderCode, cfg.MunicipalityCode, cfg.Environment,
		nullIfEmpty(cfg.Login), nullIfEmpty(cfg.Password), nullIfEmpty(cfg.Token),
		nullIfEmpty(cfg.CNAE), nullIfEmpty(cfg.ServiceCode), cfg.ISSRate,
		cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert nfse config: %w", err)
	}
	return nil
}

// NextNumber aloca o próximo sequencial da empresa. O upsert com incremento
// trava a linha do contador até o commit: emissões concorrentes serializam
// aqui e nunca repetem número.
func (r *NfseRepo) NextNumber(companyID string) (int64, error) {
	query := `
		INSERT INTO nfse_counters (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_number = nfse_counters.last_number + 1
		RETURNING last_number`
	var number int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&number); err != nil {
		return 0, fmt.Errorf("next nfse number: %w", err)
	}
	return number, nil
}

// Create persiste a nota emitida.
func (r *NfseRepo) Create(n *entity.NfseIssued) error {
	query := `
		INSERT INTO nfse_issued (id, company_id, number, customer_id, service_code, cnae,
			description, competence_date, service_value, deduction_value, base_value,
			iss_rate, iss_value, iss_withheld,
			pis_rate, pis_value, cofins_rate, cofins_value, ir_rate, ir_value,
			csll_rate, csll_value, inss_rate, inss_value, net_value,
			status, cancelled_at, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.CompanyID, n.Number, n.CustomerID, n.ServiceCode, nullIfEmpty(n.CNAE),
		n.Description, n.CompetenceDate, n.ServiceValue, n.DeductionValue, n.BaseValue,
		n.ISSRate, n.ISSValue, n.ISSWithheld,
		n.PISRate, n.PISValue, n.COFINSRate, n.COFINSValue, n.IRRate, n.IRValue,
		n.CSLLRate, n.CSLLValue, n.INSSRate, n.INSSValue, n.NetValue,
		n.Status, n.CancelledAt, nullIfEmpty(n.CancelReason), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert nfse: %w", err)
	}
	return nil
}

// Update grava status, cancelamento e motivo.
func (r *NfseRepo) Update(n *entity.NfseIssued) error {
	query := `
		UPDATE nfse_issued
		SET status        = $2,
		    cancelled_at  = $3,
		    cancel_reason = COALESCE($4, cancel_reason),
		    updated_at    = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		n.ID, n.Status, n.CancelledAt, nullIfEmpty(n.CancelReason), n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nfse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update nfse: no rows")
	}
	return nil
}

const nfseColumns = `id, company_id, number, customer_id, service_code, COALESCE(cnae, ''),
	       description, competence_date, service_value, deduction_value, base_value,
	       iss_rate, iss_value, iss_withheld,
	       pis_rate, pis_value, cofins_rate, cofins_value, ir_rate, ir_value,
	       csll_rate, csll_value, inss_rate, inss_value, net_value,
	       status, cancelled_at, COALESCE(cancel_reason, ''), created_at, updated_at`

// GetByID busca a nota por id dentro do tenant.
func (r *NfseRepo) GetByID(companyID, id string) (*entity.NfseIssued, error) {
	query := `
		SELECT ` + nfseColumns + `
		FROM nfse_issued WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetByIDForUpdate busca a nota travando a linha (SELECT FOR UPDATE) para o
// cancelamento ler-verificar-gravar sem corrida.
func (r *NfseRepo) GetByIDForUpdate(companyID, id string) (*entity.NfseIssued, error) {
	query := `
		SELECT ` + nfseColumns + `
		FROM nfse_issued WHERE company_id = $1 AND id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// List lista as notas da empresa com filtros opcionais e paginação.
func (r *NfseRepo) List(companyID string, filter repository.NfseFilter) ([]*entity.NfseIssued, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + nfseColumns + ` FROM nfse_issued WHERE company_id = $1`)
	args := []any{companyID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		fmt.Fprintf(&sb, " AND customer_id = $%d", len(args))
	}
	if filter.CompetenceFrom != nil {
		args = append(args, *filter.CompetenceFrom)
		fmt.Fprintf(&sb, " AND competence_date >= $%d", len(args))
	}
	if filter.CompetenceTo != nil {
		args = append(args, *filter.CompetenceTo)
		fmt.Fprintf(&sb, " AND competence_date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY number")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list nfse: %w", err)
	}
	defer rows.Close()
	var list []*entity.NfseIssued
	for rows.Next() {
		n, err := scanNfse(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NfseRepo) scanOne(row pgx.Row) (*entity.NfseIssued, error) {
	n, err := scanNfse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfse: %w", err)
	}
	return n, nil
}

func scanNfse(row pgx.Row) (*entity.NfseIssued, error) {
	var n entity.NfseIssued
	err := row.Scan(
		&n.ID, &n.CompanyID, &n.Number, &n.CustomerID, &n.ServiceCode, &n.CNAE,
		&n.Description, &n.CompetenceDate, &n.ServiceValue, &n.DeductionValue, &n.BaseValue,
		&n.ISSRate, &n.ISSValue, &n.ISSWithheld,
		&n.PISRate, &n.PISValue, &n.COFINSRate, &n.COFINSValue, &n.IRRate, &n.IRValue,
		&n.CSLLRate, &n.CSLLValue, &n.INSSRate, &n.INSSValue, &n.NetValue,
		&n.Status, &n.CancelledAt, &n.CancelReason, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

package fiscal_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
	"github.com/tributa/fiscal-engine/pkg/logger"
)

// Fakes em memória para os testes de caso de uso. O fakeTxRunner apenas
// repassa os próprios fakes; a atomicidade real é coberta pelos adaptadores
// PostgreSQL.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

// ── Obrigações ────────────────────────────────────────────────────────────────

type fakeObligationRepo struct {
	rows map[string]*entity.FiscalObligation // por id
}

func newFakeObligationRepo() *fakeObligationRepo {
	return &fakeObligationRepo{rows: map[string]*entity.FiscalObligation{}}
}

func (f *fakeObligationRepo) naturalKey(companyID, code string, year, month int) string {
	return fmt.Sprintf("%s|%s|%d|%d", companyID, code, year, month)
}

func (f *fakeObligationRepo) Create(o *entity.FiscalObligation) error {
	for _, row := range f.rows {
		if row.CompanyID == o.CompanyID && row.Code == o.Code && row.Year == o.Year && row.Month == o.Month {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	f.rows[o.ID] = &cp
	return nil
}

func (f *fakeObligationRepo) Update(o *entity.FiscalObligation) error {
	if _, ok := f.rows[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	f.rows[o.ID] = &cp
	return nil
}

func (f *fakeObligationRepo) GetByID(companyID, id string) (*entity.FiscalObligation, error) {
	row, ok := f.rows[id]
	if !ok || row.CompanyID != companyID {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeObligationRepo) GetByNaturalKey(companyID, code string, year, month int) (*entity.FiscalObligation, error) {
	for _, row := range f.rows {
		if row.CompanyID == companyID && row.Code == code && row.Year == year && row.Month == month {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeObligationRepo) ListByPeriod(companyID string, year, month int, status string) ([]*entity.FiscalObligation, error) {
	var out []*entity.FiscalObligation
	for _, row := range f.rows {
		if row.CompanyID != companyID || row.Year != year || row.Month != month {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ── Apuração ──────────────────────────────────────────────────────────────────

type fakeApurationRepo struct {
	apurations map[string]*entity.TaxApuration
	items      map[string][]*entity.ApurationItem // por apurationID
}

func newFakeApurationRepo() *fakeApurationRepo {
	return &fakeApurationRepo{
		apurations: map[string]*entity.TaxApuration{},
		items:      map[string][]*entity.ApurationItem{},
	}
}

func (f *fakeApurationRepo) Create(a *entity.TaxApuration) error {
	for _, row := range f.apurations {
		if row.CompanyID == a.CompanyID && row.TaxType == a.TaxType && row.Year == a.Year && row.Month == a.Month {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	f.apurations[a.ID] = &cp
	return nil
}

func (f *fakeApurationRepo) GetByKey(companyID, taxType string, year, month int) (*entity.TaxApuration, error) {
	for _, row := range f.apurations {
		if row.CompanyID == companyID && row.TaxType == taxType && row.Year == year && row.Month == month {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeApurationRepo) GetByKeyForUpdate(companyID, taxType string, year, month int) (*entity.TaxApuration, error) {
	return f.GetByKey(companyID, taxType, year, month)
}

func (f *fakeApurationRepo) GetByIDForUpdate(companyID, id string) (*entity.TaxApuration, error) {
	row, ok := f.apurations[id]
	if !ok || row.CompanyID != companyID {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeApurationRepo) UpdateTotals(a *entity.TaxApuration) error {
	row, ok := f.apurations[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	row.TotalCredit = a.TotalCredit
	row.TotalDebit = a.TotalDebit
	row.Balance = a.Balance
	row.UpdatedAt = a.UpdatedAt
	return nil
}

func (f *fakeApurationRepo) SetClosed(a *entity.TaxApuration) error {
	row, ok := f.apurations[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	row.ClosedAt = a.ClosedAt
	row.UpdatedAt = a.UpdatedAt
	return nil
}

func (f *fakeApurationRepo) CreateItem(item *entity.ApurationItem) error {
	cp := *item
	f.items[item.ApurationID] = append(f.items[item.ApurationID], &cp)
	return nil
}

func (f *fakeApurationRepo) ListItems(apurationID string) ([]*entity.ApurationItem, error) {
	items := f.items[apurationID]
	out := make([]*entity.ApurationItem, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeApurationRepo) ListByPeriod(companyID string, year, month int, taxType string) ([]*entity.TaxApuration, error) {
	var out []*entity.TaxApuration
	for _, row := range f.apurations {
		if row.CompanyID != companyID || row.Year != year || row.Month != month {
			continue
		}
		if taxType != "" && row.TaxType != taxType {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaxType < out[j].TaxType })
	return out, nil
}

// ── DIFAL ─────────────────────────────────────────────────────────────────────

type fakeDifalRepo struct {
	rows []*entity.DifalCalculation
}

func (f *fakeDifalRepo) Create(calc *entity.DifalCalculation) error {
	cp := *calc
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeDifalRepo) List(companyID, ufOrigem, ufDestino string, limit int) ([]*entity.DifalCalculation, error) {
	var out []*entity.DifalCalculation
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		row := f.rows[i]
		if row.CompanyID != companyID {
			continue
		}
		if ufOrigem != "" && row.UFOrigem != ufOrigem {
			continue
		}
		if ufDestino != "" && row.UFDestino != ufDestino {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

// ── NFS-e ─────────────────────────────────────────────────────────────────────

type fakeNfseRepo struct {
	config *entity.NfseConfig
	notes  map[string]*entity.NfseIssued
	nextN  int64
}

func newFakeNfseRepo() *fakeNfseRepo {
	return &fakeNfseRepo{notes: map[string]*entity.NfseIssued{}}
}

func (f *fakeNfseRepo) GetConfig(companyID string) (*entity.NfseConfig, error) {
	if f.config == nil || f.config.CompanyID != companyID {
		return nil, nil
	}
	cp := *f.config
	return &cp, nil
}

func (f *fakeNfseRepo) UpsertConfig(cfg *entity.NfseConfig) error {
	cp := *cfg
	f.config = &cp
	return nil
}

func (f *fakeNfseRepo) NextNumber(companyID string) (int64, error) {
	f.nextN++
	return f.nextN, nil
}

func (f *fakeNfseRepo) Create(n *entity.NfseIssued) error {
	cp := *n
	f.notes[n.ID] = &cp
	return nil
}

func (f *fakeNfseRepo) Update(n *entity.NfseIssued) error {
	if _, ok := f.notes[n.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *n
	f.notes[n.ID] = &cp
	return nil
}

func (f *fakeNfseRepo) GetByID(companyID, id string) (*entity.NfseIssued, error) {
	row, ok := f.notes[id]
	if !ok || row.CompanyID != companyID {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeNfseRepo) GetByIDForUpdate(companyID, id string) (*entity.NfseIssued, error) {
	return f.GetByID(companyID, id)
}

func (f *fakeNfseRepo) List(companyID string, filter repository.NfseFilter) ([]*entity.NfseIssued, error) {
	var all []*entity.NfseIssued
	for _, row := range f.notes {
		if row.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && row.CustomerID != filter.CustomerID {
			continue
		}
		if filter.CompetenceFrom != nil && row.CompetenceDate.Before(*filter.CompetenceFrom) {
			continue
		}
		if filter.CompetenceTo != nil && row.CompetenceDate.After(*filter.CompetenceTo) {
			continue
		}
		cp := *row
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, nil
}

// ── Bloco K ───────────────────────────────────────────────────────────────────

type fakeBlocoKRepo struct {
	rows []*entity.BlocoKRecord
}

func (f *fakeBlocoKRepo) DeleteByPeriod(companyID string, year, month int) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.CompanyID == companyID && row.Year == year && row.Month == month {
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return nil
}

func (f *fakeBlocoKRepo) CreateBatch(records []*entity.BlocoKRecord) error {
	for _, r := range records {
		cp := *r
		f.rows = append(f.rows, &cp)
	}
	return nil
}

func (f *fakeBlocoKRepo) ListByPeriod(companyID string, year, month int, recordType string) ([]*entity.BlocoKRecord, error) {
	var out []*entity.BlocoKRecord
	for _, row := range f.rows {
		if row.CompanyID != companyID || row.Year != year || row.Month != month {
			continue
		}
		if recordType != "" && row.RecordType != recordType {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

type fakeStockSource struct {
	movements []*entity.StockMovement
	balances  []*entity.StockBalance
}

func (f *fakeStockSource) ListMovements(companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.CompanyID == companyID && !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStockSource) ListBalances(companyID string, at time.Time) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range f.balances {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ── TxRunner / Cipher / PDF ───────────────────────────────────────────────────

type fakeTxRunner struct {
	apuration *fakeApurationRepo
	nfse      *fakeNfseRepo
	blocoK    *fakeBlocoKRepo
}

func (f *fakeTxRunner) RunApuration(ctx context.Context, fn func(repo repository.ApurationRepository) error) error {
	return fn(f.apuration)
}

func (f *fakeTxRunner) RunNfse(ctx context.Context, fn func(repo repository.NfseRepository) error) error {
	return fn(f.nfse)
}

func (f *fakeTxRunner) RunBlocoK(ctx context.Context, fn func(repo repository.BlocoKRepository) error) error {
	return fn(f.blocoK)
}

type fakeCipher struct{}

func (fakeCipher) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (fakeCipher) Decrypt(ciphertext string) (string, error) {
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

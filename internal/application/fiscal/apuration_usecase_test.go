package fiscal_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	appfiscal "github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
)

type fakePDFGenerator struct{ called bool }

func (f *fakePDFGenerator) GenerateSummaryPDF(_ context.Context, _ *dto.ApurationSummaryResponse) ([]byte, error) {
	f.called = true
	return []byte("%PDF-1.7 resumo"), nil
}

func newApurationUC() (*appfiscal.ApurationUseCase, *fakeApurationRepo, *fakePDFGenerator) {
	repo := newFakeApurationRepo()
	tx := &fakeTxRunner{apuration: repo}
	pdf := &fakePDFGenerator{}
	return appfiscal.NewApurationUseCase(repo, tx, pdf), repo, pdf
}

func creditItem(value int64) dto.AddApurationItemRequest {
	return dto.AddApurationItemRequest{
		DocumentType:   "NFE",
		DocumentNumber: "12345",
		CFOP:           "1102",
		BaseValue:      decimal.NewFromInt(value * 10),
		Rate:           decimal.NewFromInt(10),
		TaxValue:       decimal.NewFromInt(value),
		Nature:         entity.ItemNatureCredit,
	}
}

func debitItem(value int64) dto.AddApurationItemRequest {
	it := creditItem(value)
	it.Nature = entity.ItemNatureDebit
	it.CFOP = "5102"
	return it
}

func TestGetOrCreateApuration_CriaAbertaVazia(t *testing.T) {
	uc, _, _ := newApurationUC()

	ap, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)
	assert.Equal(t, "OPEN", ap.Status)
	assert.True(t, ap.Balance.IsZero())

	// Segunda chamada devolve a mesma apuração, sem duplicar.
	again, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)
	assert.Equal(t, ap.ID, again.ID)
}

func TestGetOrCreateApuration_TipoInvalido(t *testing.T) {
	uc, _, _ := newApurationUC()
	_, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "IVA", Year: 2025, Month: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddApurationItem_RecomputaTotais(t *testing.T) {
	uc, _, _ := newApurationUC()
	ap, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)

	out, err := uc.AddItem(context.Background(), testCompany, ap.ID, creditItem(500))
	require.NoError(t, err)
	assert.True(t, out.TotalCredit.Equal(decimal.NewFromInt(500)))

	out, err = uc.AddItem(context.Background(), testCompany, ap.ID, debitItem(180))
	require.NoError(t, err)
	assert.True(t, out.TotalCredit.Equal(decimal.NewFromInt(500)), "crédito: %s", out.TotalCredit)
	assert.True(t, out.TotalDebit.Equal(decimal.NewFromInt(180)), "débito: %s", out.TotalDebit)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(320)), "saldo: %s", out.Balance)
	assert.Len(t, out.Items, 2)
}

func TestAddApurationItem_ApuracaoDeOutroTenant(t *testing.T) {
	uc, _, _ := newApurationUC()
	ap, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), "outra-empresa", ap.ID, creditItem(100))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddApurationItem_LancamentoInvalido(t *testing.T) {
	uc, _, _ := newApurationUC()
	ap, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)

	bad := creditItem(100)
	bad.TaxValue = decimal.Zero
	_, err = uc.AddItem(context.Background(), testCompany, ap.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = creditItem(100)
	bad.Nature = "ESTORNO"
	_, err = uc.AddItem(context.Background(), testCompany, ap.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCloseApuration_BloqueiaNovosItens depois do encerramento, AddItem para
// a mesma chave falha sempre com ErrInvalidState.
func TestCloseApuration_BloqueiaNovosItens(t *testing.T) {
	uc, _, _ := newApurationUC()
	ap, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), testCompany, ap.ID, creditItem(500))
	require.NoError(t, err)

	closed, err := uc.Close(context.Background(), testCompany, dto.CloseApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", closed.Status)
	assert.NotEmpty(t, closed.ClosedAt)

	_, err = uc.AddItem(context.Background(), testCompany, ap.ID, creditItem(10))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCloseApuration_DuploEncerramento(t *testing.T) {
	uc, _, _ := newApurationUC()
	_, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "PIS", Year: 2025, Month: 4})
	require.NoError(t, err)

	_, err = uc.Close(context.Background(), testCompany, dto.CloseApurationRequest{TaxType: "PIS", Year: 2025, Month: 4})
	require.NoError(t, err)

	_, err = uc.Close(context.Background(), testCompany, dto.CloseApurationRequest{TaxType: "PIS", Year: 2025, Month: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "segundo encerramento deve falhar")
}

func TestCloseApuration_Inexistente(t *testing.T) {
	uc, _, _ := newApurationUC()
	_, err := uc.Close(context.Background(), testCompany, dto.CloseApurationRequest{TaxType: "IPI", Year: 2025, Month: 4})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApurationSummary_AgregaPorImposto(t *testing.T) {
	uc, _, _ := newApurationUC()
	ctx := context.Background()

	icms, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "ICMS", Year: 2025, Month: 4})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, testCompany, icms.ID, creditItem(500))
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, testCompany, icms.ID, debitItem(180))
	require.NoError(t, err)

	pis, err := uc.GetOrCreate(testCompany, dto.GetOrCreateApurationRequest{TaxType: "PIS", Year: 2025, Month: 4})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, testCompany, pis.ID, debitItem(65))
	require.NoError(t, err)

	summary, err := uc.Summary(testCompany, 2025, 4)
	require.NoError(t, err)
	require.Len(t, summary.ByTaxType, 2)
	assert.Equal(t, "ICMS", summary.ByTaxType[0].TaxType)
	assert.Equal(t, "PIS", summary.ByTaxType[1].TaxType)
	assert.True(t, summary.TotalCredit.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalDebit.Equal(decimal.NewFromInt(245)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(255)))
}

func TestApurationSummaryPDF(t *testing.T) {
	uc, _, pdf := newApurationUC()

	out, err := uc.SummaryPDF(context.Background(), testCompany, 2025, 4)
	require.NoError(t, err)
	assert.True(t, pdf.called)
	assert.NotEmpty(t, out)
}

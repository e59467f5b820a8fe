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

func newNfseUC() (*appfiscal.NfseUseCase, *fakeNfseRepo) {
	repo := newFakeNfseRepo()
	tx := &fakeTxRunner{nfse: repo}
	return appfiscal.NewNfseUseCase(repo, tx, fakeCipher{}), repo
}

func nfseRequest() dto.CreateNfseRequest {
	return dto.CreateNfseRequest{
		CustomerID:     "cust-1",
		ServiceCode:    "07.02",
		Description:    "Manutenção preventiva",
		CompetenceDate: "2025-04-10",
		ServiceValue:   decimal.NewFromInt(1000),
		ISSRate:        decimal.NewFromInt(5),
	}
}

func TestCreateNfse_CalculaValoresESequencial(t *testing.T) {
	uc, _ := newNfseUC()
	ctx := context.Background()

	first, err := uc.Create(ctx, testCompany, nfseRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, entity.NfseStatusDraft, first.Status)
	assert.True(t, first.ISSValue.Equal(decimal.NewFromInt(50)), "iss: %s", first.ISSValue)
	assert.True(t, first.NetValue.Equal(decimal.NewFromInt(1000)), "sem retenção o líquido é o valor cheio")

	second, err := uc.Create(ctx, testCompany, nfseRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Number, "número sequencial por empresa")
}

func TestCreateNfse_ComRetencoes(t *testing.T) {
	uc, _ := newNfseUC()
	in := nfseRequest()
	in.ISSWithheld = true
	in.PISRate = decimal.NewFromFloat(0.65)
	in.COFINSRate = decimal.NewFromInt(3)

	out, err := uc.Create(context.Background(), testCompany, in)
	require.NoError(t, err)
	// líquido = 1000 - (50 + 6.5 + 30) = 913.5
	assert.True(t, out.NetValue.Equal(decimal.NewFromFloat(913.5)), "líquido: %s", out.NetValue)
}

func TestCreateNfse_EntradasInvalidas(t *testing.T) {
	uc, _ := newNfseUC()
	ctx := context.Background()

	in := nfseRequest()
	in.CustomerID = ""
	_, err := uc.Create(ctx, testCompany, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = nfseRequest()
	in.CompetenceDate = "10/04/2025"
	_, err = uc.Create(ctx, testCompany, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data fora de AAAA-MM-DD")

	in = nfseRequest()
	in.ServiceValue = decimal.Zero
	_, err = uc.Create(ctx, testCompany, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelNfse_TransicaoUnica(t *testing.T) {
	uc, _ := newNfseUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, testCompany, nfseRequest())
	require.NoError(t, err)

	out, err := uc.Cancel(ctx, testCompany, created.ID, "emissão duplicada")
	require.NoError(t, err)
	assert.Equal(t, entity.NfseStatusCancelled, out.Status)
	assert.NotEmpty(t, out.CancelledAt)
	assert.Equal(t, "emissão duplicada", out.CancelReason)

	// Segundo cancelamento falha: transição terminal única.
	_, err = uc.Cancel(ctx, testCompany, created.ID, "de novo")
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancelNfse_IsolamentoDeTenant(t *testing.T) {
	uc, _ := newNfseUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, testCompany, nfseRequest())
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, "outra-empresa", created.ID, "tentativa cruzada")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Cancel(ctx, testCompany, "id-inexistente", "motivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelNfse_MotivoObrigatorio(t *testing.T) {
	uc, _ := newNfseUC()
	_, err := uc.Cancel(context.Background(), testCompany, "qualquer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListNfse_Filtros(t *testing.T) {
	uc, _ := newNfseUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, testCompany, nfseRequest())
	require.NoError(t, err)
	other := nfseRequest()
	other.CustomerID = "cust-2"
	other.CompetenceDate = "2025-05-20"
	created, err := uc.Create(ctx, testCompany, other)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, testCompany, created.ID, "teste")
	require.NoError(t, err)

	all, err := uc.List(testCompany, dto.ListNfseRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := uc.List(testCompany, dto.ListNfseRequest{Status: entity.NfseStatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "cust-2", cancelled[0].CustomerID)

	april, err := uc.List(testCompany, dto.ListNfseRequest{
		CompetenceFrom: "2025-04-01",
		CompetenceTo:   "2025-04-30",
	})
	require.NoError(t, err)
	assert.Len(t, april, 1)

	_, err = uc.List(testCompany, dto.ListNfseRequest{Status: "INVALIDO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNfseConfig_SegredosCifradosEMascarados(t *testing.T) {
	uc, repo := newNfseUC()

	_, err := uc.UpsertConfig(testCompany, dto.UpsertNfseConfigRequest{
		ProviderCode:     "GINFES",
		MunicipalityCode: "3550308",
		Environment:      entity.NfseEnvHomologation,
		Login:            "empresa",
		Password:         "segredo-1",
		ISSRate:          decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	// O banco só vê o texto cifrado.
	assert.Equal(t, "enc:segredo-1", repo.config.Password)

	out, err := uc.GetConfig(testCompany)
	require.NoError(t, err)
	assert.Equal(t, "********", out.Password, "segredo nunca sai em claro")
	assert.Empty(t, out.Token, "token não definido não é mascarado")
}

func TestNfseConfig_UpsertPreservaSegredoQuandoVazio(t *testing.T) {
	uc, repo := newNfseUC()
	base := dto.UpsertNfseConfigRequest{
		ProviderCode:     "GINFES",
		MunicipalityCode: "3550308",
		Environment:      entity.NfseEnvHomologation,
		Login:            "empresa",
		Password:         "segredo-1",
		ISSRate:          decimal.NewFromInt(5),
	}
	_, err := uc.UpsertConfig(testCompany, base)
	require.NoError(t, err)

	update := base
	update.Password = ""
	update.Environment = entity.NfseEnvProduction
	_, err = uc.UpsertConfig(testCompany, update)
	require.NoError(t, err)

	assert.Equal(t, "enc:segredo-1", repo.config.Password, "password vazio preserva o segredo gravado")
	assert.Equal(t, entity.NfseEnvProduction, repo.config.Environment)
}

func TestNfseConfig_Validacao(t *testing.T) {
	uc, _ := newNfseUC()

	_, err := uc.UpsertConfig(testCompany, dto.UpsertNfseConfigRequest{
		ProviderCode: "GINFES", MunicipalityCode: "3550308", Environment: "STAGING",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ambiente desconhecido")

	_, err = uc.GetConfig("empresa-sem-config")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/fiscal"
)

// TestCalculateNfse_SemRetencao vetor de referência: serviço 1000 com ISS 5%
// e sem retenção -> ISS 50 destacado, líquido igual ao valor do serviço.
func TestCalculateNfse_SemRetencao(t *testing.T) {
	out, err := fiscal.CalculateNfse(fiscal.NfseInput{
		ServiceValue: decimal.NewFromInt(1000),
		ISSRate:      decimal.NewFromInt(5),
		ISSWithheld:  false,
	})
	require.NoError(t, err)
	assert.True(t, out.BaseValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, out.ISSValue.Equal(decimal.NewFromInt(50)), "iss: %s", out.ISSValue)
	assert.True(t, out.NetValue.Equal(decimal.NewFromInt(1000)), "sem retenção o líquido é o valor cheio: %s", out.NetValue)
}

func TestCalculateNfse_ComRetencao(t *testing.T) {
	out, err := fiscal.CalculateNfse(fiscal.NfseInput{
		ServiceValue: decimal.NewFromInt(1000),
		ISSRate:      decimal.NewFromInt(5),
		ISSWithheld:  true,
		PISRate:      decimal.NewFromFloat(0.65),
		COFINSRate:   decimal.NewFromInt(3),
		IRRate:       decimal.NewFromFloat(1.5),
	})
	require.NoError(t, err)
	assert.True(t, out.ISSValue.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.PISValue.Equal(decimal.NewFromFloat(6.5)), "pis: %s", out.PISValue)
	assert.True(t, out.COFINSValue.Equal(decimal.NewFromInt(30)))
	assert.True(t, out.IRValue.Equal(decimal.NewFromInt(15)))
	// líquido = 1000 - (50 + 6.5 + 30 + 15) = 898.5
	assert.True(t, out.NetValue.Equal(decimal.NewFromFloat(898.5)), "líquido: %s", out.NetValue)
}

func TestCalculateNfse_DeducaoReduzBase(t *testing.T) {
	out, err := fiscal.CalculateNfse(fiscal.NfseInput{
		ServiceValue:   decimal.NewFromInt(1000),
		DeductionValue: decimal.NewFromInt(200),
		ISSRate:        decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.True(t, out.BaseValue.Equal(decimal.NewFromInt(800)))
	assert.True(t, out.ISSValue.Equal(decimal.NewFromInt(40)), "ISS incide sobre a base deduzida: %s", out.ISSValue)
}

func TestCalculateNfse_EntradasInvalidas(t *testing.T) {
	_, err := fiscal.CalculateNfse(fiscal.NfseInput{
		ServiceValue: decimal.Zero,
		ISSRate:      decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "serviço deve ser positivo")

	_, err = fiscal.CalculateNfse(fiscal.NfseInput{
		ServiceValue:   decimal.NewFromInt(100),
		DeductionValue: decimal.NewFromInt(150),
		ISSRate:        decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dedução maior que o serviço")

	_, err = fiscal.CalculateNfse(fiscal.NfseInput{
		ServiceValue: decimal.NewFromInt(100),
		ISSRate:      decimal.NewFromInt(101),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "alíquota fora de [0,100]")
}

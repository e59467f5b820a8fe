package fiscal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/fiscal"
)

func decimalFromInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestObligationDueDate_DiaUtil(t *testing.T) {
	// GIA: dia 20 do mês seguinte. Fev/2024 dia 20 é terça, sem ajuste.
	due, err := fiscal.ObligationDueDate(fiscal.CodeGIA, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), due)
}

func TestObligationDueDate_DomingoEmpurraSegunda(t *testing.T) {
	// EFD-Reinf de mai/2025 vence 15/06/2025, um domingo -> 16/06 (segunda).
	due, err := fiscal.ObligationDueDate(fiscal.CodeEFDReinf, 2025, 5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), due)
}

func TestObligationDueDate_SabadoEmpurraSegunda(t *testing.T) {
	// EFD-Reinf de out/2025 vence 15/11/2025, um sábado -> 17/11 (segunda).
	due, err := fiscal.ObligationDueDate(fiscal.CodeEFDReinf, 2025, 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC), due)
}

func TestObligationDueDate_ViradaDeAno(t *testing.T) {
	// SPED Fiscal de dez/2024 vence em jan/2025; 25/01/2025 é sábado -> 27/01.
	due, err := fiscal.ObligationDueDate(fiscal.CodeSpedFiscal, 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), due)

	// EFD Contribuições desloca dois meses: dez/2024 -> 10/02/2025 (segunda).
	due, err = fiscal.ObligationDueDate(fiscal.CodeSpedContribuicoes, 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), due)
}

func TestObligationDueDate_CodigoDesconhecido(t *testing.T) {
	_, err := fiscal.ObligationDueDate("INEXISTENTE", 2024, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownCode)
}

func TestObligationDefinitions_CopiaDefensiva(t *testing.T) {
	defs := fiscal.ObligationDefinitions()
	require.NotEmpty(t, defs)
	original := defs[0].Code

	defs[0].Code = "ALTERADO"
	again := fiscal.ObligationDefinitions()
	assert.Equal(t, original, again[0].Code, "a tabela estática não pode ser mutada pelo chamador")
}

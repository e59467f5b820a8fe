package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	"github.com/tributa/fiscal-engine/internal/domain/fiscal"
)

func item(nature string, taxValue int64) *entity.ApurationItem {
	return &entity.ApurationItem{
		DocumentType: "NFE",
		Nature:       nature,
		BaseValue:    decimal.NewFromInt(taxValue * 10),
		Rate:         decimal.NewFromInt(10),
		TaxValue:     decimal.NewFromInt(taxValue),
	}
}

func TestCalculateBalance_ListaVazia(t *testing.T) {
	totals := fiscal.CalculateBalance(nil)
	assert.True(t, totals.TotalCredit.IsZero())
	assert.True(t, totals.TotalDebit.IsZero())
	assert.True(t, totals.Balance.IsZero(), "lista vazia deve ter saldo zero")
}

// TestCalculateBalance_VetorReferencia crédito 500 e débito 180 -> saldo 320.
func TestCalculateBalance_VetorReferencia(t *testing.T) {
	totals := fiscal.CalculateBalance([]*entity.ApurationItem{
		item(entity.ItemNatureCredit, 500),
		item(entity.ItemNatureDebit, 180),
	})
	assert.True(t, totals.TotalCredit.Equal(decimal.NewFromInt(500)), "crédito: %s", totals.TotalCredit)
	assert.True(t, totals.TotalDebit.Equal(decimal.NewFromInt(180)), "débito: %s", totals.TotalDebit)
	assert.True(t, totals.Balance.Equal(decimal.NewFromInt(320)), "saldo: %s", totals.Balance)
}

func TestCalculateBalance_SaldoDevedor(t *testing.T) {
	totals := fiscal.CalculateBalance([]*entity.ApurationItem{
		item(entity.ItemNatureCredit, 100),
		item(entity.ItemNatureDebit, 250),
		item(entity.ItemNatureDebit, 50),
	})
	assert.True(t, totals.Balance.Equal(decimal.NewFromInt(-200)), "saldo devedor: %s", totals.Balance)
}

// TestCalculateBalance_Propriedade saldo == soma(créditos) - soma(débitos)
// para qualquer combinação de lançamentos.
func TestCalculateBalance_Propriedade(t *testing.T) {
	values := []int64{1, 13, 250, 999, 10000}
	var items []*entity.ApurationItem
	expCredit, expDebit := decimal.Zero, decimal.Zero
	for i, v := range values {
		nature := entity.ItemNatureCredit
		if i%2 == 1 {
			nature = entity.ItemNatureDebit
		}
		items = append(items, item(nature, v))
		if nature == entity.ItemNatureCredit {
			expCredit = expCredit.Add(decimal.NewFromInt(v))
		} else {
			expDebit = expDebit.Add(decimal.NewFromInt(v))
		}
	}
	totals := fiscal.CalculateBalance(items)
	assert.True(t, totals.Balance.Equal(expCredit.Sub(expDebit)))
}

func TestValidateApurationItem(t *testing.T) {
	valid := item(entity.ItemNatureCredit, 100)
	assert.NoError(t, fiscal.ValidateApurationItem(valid))

	bad := item("ESTORNO", 100)
	assert.ErrorIs(t, fiscal.ValidateApurationItem(bad), domain.ErrInvalidInput, "natureza desconhecida")

	bad = item(entity.ItemNatureDebit, 100)
	bad.TaxValue = decimal.Zero
	assert.ErrorIs(t, fiscal.ValidateApurationItem(bad), domain.ErrInvalidInput, "taxValue deve ser positivo")

	bad = item(entity.ItemNatureDebit, 100)
	bad.TaxValue = decimal.NewFromInt(-5)
	assert.ErrorIs(t, fiscal.ValidateApurationItem(bad), domain.ErrInvalidInput, "taxValue negativo")

	bad = item(entity.ItemNatureCredit, 100)
	bad.DocumentType = ""
	assert.ErrorIs(t, fiscal.ValidateApurationItem(bad), domain.ErrInvalidInput, "documento obrigatório")

	bad = item(entity.ItemNatureCredit, 100)
	bad.Rate = decimal.NewFromInt(101)
	assert.ErrorIs(t, fiscal.ValidateApurationItem(bad), domain.ErrInvalidInput, "alíquota fora de [0,100]")
}

func TestValidTaxType(t *testing.T) {
	for _, tt := range []string{"ICMS", "IPI", "PIS", "COFINS", "ISS"} {
		assert.True(t, fiscal.ValidTaxType(tt), tt)
	}
	assert.False(t, fiscal.ValidTaxType("IVA"))
	assert.False(t, fiscal.ValidTaxType(""))
}

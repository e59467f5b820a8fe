package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
)

// ApurationTotals totais recomputados a partir do conjunto completo de itens.
type ApurationTotals struct {
	TotalCredit decimal.Decimal
	TotalDebit  decimal.Decimal
	Balance     decimal.Decimal // TotalCredit - TotalDebit
}

// CalculateBalance recomputa os totais da apuração a partir dos itens.
// É a única fórmula de saldo do motor; o caso de uso a reaplica dentro da
// mesma transação que insere cada item, para tolerar inserções concorrentes.
// Lista vazia devolve totais zero.
func CalculateBalance(items []*entity.ApurationItem) ApurationTotals {
	totals := ApurationTotals{
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
	}
	for _, it := range items {
		switch it.Nature {
		case entity.ItemNatureCredit:
			totals.TotalCredit = totals.TotalCredit.Add(it.TaxValue)
		case entity.ItemNatureDebit:
			totals.TotalDebit = totals.TotalDebit.Add(it.TaxValue)
		}
	}
	totals.Balance = totals.TotalCredit.Sub(totals.TotalDebit)
	return totals
}

// ValidateApurationItem valida um lançamento antes da inserção: natureza
// conhecida, taxValue positivo e alíquota (quando informada) em [0,100].
// O motor não recalcula taxValue a partir de base*rate; confia no chamador.
func ValidateApurationItem(item *entity.ApurationItem) error {
	if item.Nature != entity.ItemNatureCredit && item.Nature != entity.ItemNatureDebit {
		return domain.ErrInvalidInput
	}
	if item.DocumentType == "" {
		return domain.ErrInvalidInput
	}
	if !item.TaxValue.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if item.BaseValue.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !percentInRange(item.Rate, oneHundred) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ValidTaxType informa se o tipo de imposto é apurável.
func ValidTaxType(taxType string) bool {
	switch taxType {
	case entity.TaxTypeICMS, entity.TaxTypeIPI, entity.TaxTypePIS, entity.TaxTypeCOFINS, entity.TaxTypeISS:
		return true
	}
	return false
}

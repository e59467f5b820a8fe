package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/tributa/fiscal-engine/internal/domain"
)

// NfseInput parâmetros do cálculo dos valores de uma NFS-e.
// Alíquotas federais zeradas significam "tributo não destacado".
type NfseInput struct {
	ServiceValue   decimal.Decimal
	DeductionValue decimal.Decimal
	ISSRate        decimal.Decimal
	ISSWithheld    bool
	PISRate        decimal.Decimal
	COFINSRate     decimal.Decimal
	IRRate         decimal.Decimal
	CSLLRate       decimal.Decimal
	INSSRate       decimal.Decimal
}

// NfseAmounts valores calculados da nota.
// NetValue só desconta as retenções quando ISSWithheld é verdadeiro; caso
// contrário o tomador paga o valor cheio do serviço.
type NfseAmounts struct {
	BaseValue   decimal.Decimal // ServiceValue - DeductionValue
	ISSValue    decimal.Decimal
	PISValue    decimal.Decimal
	COFINSValue decimal.Decimal
	IRValue     decimal.Decimal
	CSLLValue   decimal.Decimal
	INSSValue   decimal.Decimal
	NetValue    decimal.Decimal
}

// CalculateNfse computa base, ISS e retenções federais de uma NFS-e.
// Mesmo padrão base*rate/100 para todos os tributos.
func CalculateNfse(in NfseInput) (NfseAmounts, error) {
	if !in.ServiceValue.GreaterThan(decimal.Zero) {
		return NfseAmounts{}, domain.ErrInvalidInput
	}
	if in.DeductionValue.IsNegative() || in.DeductionValue.GreaterThan(in.ServiceValue) {
		return NfseAmounts{}, domain.ErrInvalidInput
	}
	for _, rate := range []decimal.Decimal{in.ISSRate, in.PISRate, in.COFINSRate, in.IRRate, in.CSLLRate, in.INSSRate} {
		if !percentInRange(rate, oneHundred) {
			return NfseAmounts{}, domain.ErrInvalidInput
		}
	}

	base := in.ServiceValue.Sub(in.DeductionValue)
	applyRate := func(rate decimal.Decimal) decimal.Decimal {
		if !rate.GreaterThan(decimal.Zero) {
			return decimal.Zero
		}
		return base.Mul(rate).Div(oneHundred)
	}

	out := NfseAmounts{
		BaseValue:   base,
		ISSValue:    applyRate(in.ISSRate),
		PISValue:    applyRate(in.PISRate),
		COFINSValue: applyRate(in.COFINSRate),
		IRValue:     applyRate(in.IRRate),
		CSLLValue:   applyRate(in.CSLLRate),
		INSSValue:   applyRate(in.INSSRate),
	}

	out.NetValue = in.ServiceValue
	if in.ISSWithheld {
		withheld := out.ISSValue.
			Add(out.PISValue).
			Add(out.COFINSValue).
			Add(out.IRValue).
			Add(out.CSLLValue).
			Add(out.INSSValue)
		out.NetValue = in.ServiceValue.Sub(withheld)
	}
	return out, nil
}

package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/tributa/fiscal-engine/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// DifalInput parâmetros do cálculo de DIFAL/FCP em operação interestadual.
type DifalInput struct {
	UFOrigem        string
	UFDestino       string
	ProductValue    decimal.Decimal
	ICMSOrigemRate  decimal.Decimal
	ICMSDestinoRate decimal.Decimal
	FCPRate         decimal.Decimal // zero = sem adicional de FCP
}

// DifalResult valores calculados. O diferencial negativo é truncado em zero:
// o destino só recolhe diferencial positivo, nunca restitui.
type DifalResult struct {
	ICMSOrigemValue  decimal.Decimal
	ICMSDestinoValue decimal.Decimal
	DifalValue       decimal.Decimal
	FCPValue         decimal.Decimal
	TotalValue       decimal.Decimal
}

// CalculateDifal executa o cálculo puro do diferencial de alíquota.
// Valida UFs, valor positivo e alíquotas em [0,100] (FCP em [0,10]) antes de
// computar; nunca falha depois da validação.
func CalculateDifal(in DifalInput) (DifalResult, error) {
	if !ValidUF(in.UFOrigem) || !ValidUF(in.UFDestino) {
		return DifalResult{}, domain.ErrUnknownUF
	}
	if !in.ProductValue.GreaterThan(decimal.Zero) {
		return DifalResult{}, domain.ErrInvalidInput
	}
	if !percentInRange(in.ICMSOrigemRate, oneHundred) || !percentInRange(in.ICMSDestinoRate, oneHundred) {
		return DifalResult{}, domain.ErrInvalidInput
	}
	if !percentInRange(in.FCPRate, fcpRateCeiling) {
		return DifalResult{}, domain.ErrInvalidInput
	}

	origem := in.ProductValue.Mul(in.ICMSOrigemRate).Div(oneHundred)
	destino := in.ProductValue.Mul(in.ICMSDestinoRate).Div(oneHundred)
	difal := destino.Sub(origem)
	if difal.IsNegative() {
		difal = decimal.Zero
	}
	fcp := decimal.Zero
	if in.FCPRate.GreaterThan(decimal.Zero) {
		fcp = in.ProductValue.Mul(in.FCPRate).Div(oneHundred)
	}
	return DifalResult{
		ICMSOrigemValue:  origem,
		ICMSDestinoValue: destino,
		DifalValue:       difal,
		FCPValue:         fcp,
		TotalValue:       difal.Add(fcp),
	}, nil
}

// percentInRange verifica 0 <= rate <= max.
func percentInRange(rate, max decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(max)
}

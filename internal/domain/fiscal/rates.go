// Package fiscal contém os serviços de domínio puros do motor fiscal:
// tabelas de alíquotas, calendário de obrigações, DIFAL, apuração e NFS-e.
// Nenhuma função deste pacote toca persistência; tudo é determinístico e
// testável isoladamente.
package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/tributa/fiscal-engine/internal/domain"
)

// Regiões fiscais relevantes para a alíquota interestadual.
const (
	regionSouthSoutheast = "SUL_SUDESTE" // PR, RS, SC, SP, RJ, MG (ES fica fora por regra constitucional)
	regionOther          = "DEMAIS"      // Norte, Nordeste, Centro-Oeste e ES
)

// ufRegions mapeia as 27 UFs para o grupo usado na alíquota interestadual.
var ufRegions = map[string]string{
	"AC": regionOther, "AL": regionOther, "AP": regionOther, "AM": regionOther,
	"BA": regionOther, "CE": regionOther, "DF": regionOther, "ES": regionOther,
	"GO": regionOther, "MA": regionOther, "MT": regionOther, "MS": regionOther,
	"MG": regionSouthSoutheast, "PA": regionOther, "PB": regionOther,
	"PR": regionSouthSoutheast, "PE": regionOther, "PI": regionOther,
	"RJ": regionSouthSoutheast, "RN": regionOther, "RS": regionSouthSoutheast,
	"RO": regionOther, "RR": regionOther, "SC": regionSouthSoutheast,
	"SP": regionSouthSoutheast, "SE": regionOther, "TO": regionOther,
}

// Alíquotas padrão de ICMS (percentuais).
var (
	rateInternal  = decimal.NewFromInt(18) // operação dentro da mesma UF
	rateSouthSE   = decimal.NewFromInt(7)  // origem e destino no grupo Sul/Sudeste
	rateStandard  = decimal.NewFromInt(12) // demais pares interestaduais
	rateImported  = decimal.NewFromInt(4)  // mercadoria de origem estrangeira (Res. SF 13/2012)
	fcpRateCeiling = decimal.NewFromInt(10)
)

// ValidUF informa se o código é uma das 27 UFs.
func ValidUF(uf string) bool {
	_, ok := ufRegions[uf]
	return ok
}

// InterstateRate devolve a alíquota de ICMS aplicável entre duas UFs.
// Mesma UF devolve a alíquota interna (o chamador deve usar o fluxo
// intraestadual). Mercadoria estrangeira é sinalizada pelo chamador, não
// detectada aqui.
func InterstateRate(ufOrigem, ufDestino string, foreignGoods bool) (decimal.Decimal, error) {
	origem, ok := ufRegions[ufOrigem]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUF
	}
	destino, ok := ufRegions[ufDestino]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUF
	}
	if ufOrigem == ufDestino {
		return rateInternal, nil
	}
	if foreignGoods {
		return rateImported, nil
	}
	if origem == regionSouthSoutheast && destino == regionSouthSoutheast {
		return rateSouthSE, nil
	}
	return rateStandard, nil
}

// FCPRateCeiling teto do adicional de FCP (percentual).
func FCPRateCeiling() decimal.Decimal { return fcpRateCeiling }

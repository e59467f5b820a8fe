package fiscal

import (
	"time"

	"github.com/tributa/fiscal-engine/internal/domain"
)

// Códigos das obrigações acessórias conhecidas pelo motor.
const (
	CodeSpedFiscal        = "SPED_FISCAL"
	CodeSpedContribuicoes = "SPED_CONTRIBUICOES"
	CodeEFDReinf          = "EFD_REINF"
	CodeESocial           = "ESOCIAL"
	CodeDCTFWeb           = "DCTFWEB"
	CodeGIA               = "GIA"
)

// ObligationDefinition é a regra fixa de vencimento de uma obrigação:
// dia alvo em um mês deslocado do período de referência.
type ObligationDefinition struct {
	Code        string
	Name        string
	Periodicity string // MONTHLY (único suportado hoje)
	DueDay      int    // dia alvo no mês de vencimento
	MonthOffset int    // meses após o período de referência
}

// obligationDefinitions tabela estática; injetada nos cálculos, nunca mutada
// em runtime.
var obligationDefinitions = []ObligationDefinition{
	{Code: CodeSpedFiscal, Name: "EFD ICMS/IPI", Periodicity: "MONTHLY", DueDay: 25, MonthOffset: 1},
	{Code: CodeSpedContribuicoes, Name: "EFD Contribuições", Periodicity: "MONTHLY", DueDay: 10, MonthOffset: 2},
	{Code: CodeEFDReinf, Name: "EFD-Reinf", Periodicity: "MONTHLY", DueDay: 15, MonthOffset: 1},
	{Code: CodeESocial, Name: "eSocial (folha)", Periodicity: "MONTHLY", DueDay: 15, MonthOffset: 1},
	{Code: CodeDCTFWeb, Name: "DCTFWeb", Periodicity: "MONTHLY", DueDay: 25, MonthOffset: 1},
	{Code: CodeGIA, Name: "GIA estadual", Periodicity: "MONTHLY", DueDay: 20, MonthOffset: 1},
}

// ObligationDefinitions devolve uma cópia da tabela de obrigações.
func ObligationDefinitions() []ObligationDefinition {
	out := make([]ObligationDefinition, len(obligationDefinitions))
	copy(out, obligationDefinitions)
	return out
}

// FindObligationDefinition busca a definição pelo código.
func FindObligationDefinition(code string) (ObligationDefinition, error) {
	for _, def := range obligationDefinitions {
		if def.Code == code {
			return def, nil
		}
	}
	return ObligationDefinition{}, domain.ErrUnknownCode
}

// ObligationDueDate calcula o vencimento de uma obrigação para o período de
// referência (year, month). Resolve a virada de ano (dezembro + offset cai no
// ano seguinte) e empurra fins de semana para a segunda-feira seguinte.
// Feriados nacionais não são modelados (limitação documentada).
func ObligationDueDate(code string, year, month int) (time.Time, error) {
	def, err := FindObligationDefinition(code)
	if err != nil {
		return time.Time{}, err
	}
	// time.Date normaliza month fora de [1,12], o que resolve a virada de ano.
	due := time.Date(year, time.Month(month+def.MonthOffset), def.DueDay, 0, 0, 0, 0, time.UTC)
	switch due.Weekday() {
	case time.Saturday:
		due = due.AddDate(0, 0, 2)
	case time.Sunday:
		due = due.AddDate(0, 0, 1)
	}
	return due, nil
}

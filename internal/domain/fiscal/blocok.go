package fiscal

import (
	"sort"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
)

// DeriveBlocoKRecords deriva as linhas do Bloco K a partir das movimentações
// de estoque e dos saldos de fechamento do período.
//
//	PRODUCTION  → K230
//	CONSUMPTION → K235
//	TRANSFER    → K220
//	saldo final → K200
//
// Entradas e saídas comuns (IN/OUT) já aparecem nos blocos C/H do SPED e não
// geram linha K. O resultado vem agrupado por tipo de registro e ordenado por
// data de movimento, pronto para persistência em lote.
func DeriveBlocoKRecords(companyID string, year, month int, movements []*entity.StockMovement, balances []*entity.StockBalance) []*entity.BlocoKRecord {
	records := make([]*entity.BlocoKRecord, 0, len(movements)+len(balances))

	for _, mov := range movements {
		var recordType string
		switch mov.Type {
		case entity.StockMovementProduction:
			recordType = entity.BlocoKRecordProduction
		case entity.StockMovementConsume:
			recordType = entity.BlocoKRecordConsumption
		case entity.StockMovementTransfer:
			recordType = entity.BlocoKRecordOtherMov
		default:
			continue
		}
		records = append(records, &entity.BlocoKRecord{
			CompanyID:    companyID,
			Year:         year,
			Month:        month,
			RecordType:   recordType,
			ProductCode:  mov.ProductCode,
			Description:  NormalizeSPEDText(mov.Description),
			MovementDate: mov.Date,
			Quantity:     mov.Quantity,
		})
	}

	for _, bal := range balances {
		records = append(records, &entity.BlocoKRecord{
			CompanyID:    companyID,
			Year:         year,
			Month:        month,
			RecordType:   entity.BlocoKRecordStock,
			ProductCode:  bal.ProductCode,
			Description:  NormalizeSPEDText(bal.Description),
			MovementDate: bal.Date,
			Quantity:     bal.Quantity,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].RecordType != records[j].RecordType {
			return records[i].RecordType < records[j].RecordType
		}
		return records[i].MovementDate.Before(records[j].MovementDate)
	})
	return records
}

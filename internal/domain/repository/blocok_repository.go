package repository

import (
	"time"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
)

// BlocoKRepository persiste as linhas derivadas do Bloco K.
// A regeração é substituição total do período: DeleteByPeriod + CreateBatch
// na mesma transação.
type BlocoKRepository interface {
	DeleteByPeriod(companyID string, year, month int) error
	CreateBatch(records []*entity.BlocoKRecord) error
	// ListByPeriod lista os registros do período; recordType vazio = todos.
	ListByPeriod(companyID string, year, month int, recordType string) ([]*entity.BlocoKRecord, error)
}

// StockSourceRepository lê os dados brutos de estoque/produção usados como
// fonte do Bloco K (somente leitura; a escrita pertence ao módulo de inventário).
type StockSourceRepository interface {
	ListMovements(companyID string, from, to time.Time) ([]*entity.StockMovement, error)
	// ListBalances devolve o saldo de cada produto na data de corte.
	ListBalances(companyID string, at time.Time) ([]*entity.StockBalance, error)
}

package repository

import "github.com/tributa/fiscal-engine/internal/domain/entity"

// ApurationRepository define o porto de persistência do livro de apuração.
// Os métodos *ForUpdate travam a linha (SELECT ... FOR UPDATE) e só fazem
// sentido dentro de uma transação do TxRunner.
type ApurationRepository interface {
	Create(a *entity.TaxApuration) error
	GetByKey(companyID, taxType string, year, month int) (*entity.TaxApuration, error)
	GetByKeyForUpdate(companyID, taxType string, year, month int) (*entity.TaxApuration, error)
	GetByIDForUpdate(companyID, id string) (*entity.TaxApuration, error)
	// UpdateTotals persiste totalCredit, totalDebit e balance recomputados.
	UpdateTotals(a *entity.TaxApuration) error
	// SetClosed grava o timestamp de encerramento.
	SetClosed(a *entity.TaxApuration) error
	CreateItem(item *entity.ApurationItem) error
	// ListItems devolve todos os itens da apuração em ordem de criação.
	ListItems(apurationID string) ([]*entity.ApurationItem, error)
	// ListByPeriod lista as apurações do período; taxType vazio = todos.
	ListByPeriod(companyID string, year, month int, taxType string) ([]*entity.TaxApuration, error)
}

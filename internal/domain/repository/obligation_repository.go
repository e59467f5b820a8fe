package repository

import "github.com/tributa/fiscal-engine/internal/domain/entity"

// ObligationRepository define o porto de persistência para obrigações acessórias.
// Toda consulta por id carrega o filtro de tenant (companyID); obrigações nunca
// são excluídas fisicamente.
type ObligationRepository interface {
	Create(o *entity.FiscalObligation) error
	Update(o *entity.FiscalObligation) error
	GetByID(companyID, id string) (*entity.FiscalObligation, error)
	// GetByNaturalKey busca pela chave natural (companyID, code, year, month).
	GetByNaturalKey(companyID, code string, year, month int) (*entity.FiscalObligation, error)
	// ListByPeriod lista as obrigações do período; status vazio = todos.
	ListByPeriod(companyID string, year, month int, status string) ([]*entity.FiscalObligation, error)
}

package repository

import (
	"time"

	"github.com/tributa/fiscal-engine/internal/domain/entity"
)

// NfseFilter filtros do listado de notas de serviço.
type NfseFilter struct {
	Status         string
	CompetenceFrom *time.Time
	CompetenceTo   *time.Time
	CustomerID     string
	Limit          int
	Offset         int
}

// NfseRepository define o porto de persistência de NFS-e e da configuração
// municipal. GetByIDForUpdate trava a linha e exige transação (cancelamento).
type NfseRepository interface {
	GetConfig(companyID string) (*entity.NfseConfig, error)
	UpsertConfig(cfg *entity.NfseConfig) error
	// NextNumber aloca o próximo sequencial da empresa; deve rodar dentro da
	// mesma transação que insere a nota para não pular nem repetir números.
	NextNumber(companyID string) (int64, error)
	Create(n *entity.NfseIssued) error
	Update(n *entity.NfseIssued) error
	GetByID(companyID, id string) (*entity.NfseIssued, error)
	GetByIDForUpdate(companyID, id string) (*entity.NfseIssued, error)
	List(companyID string, filter NfseFilter) ([]*entity.NfseIssued, error)
}

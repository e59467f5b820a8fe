package repository

import "github.com/tributa/fiscal-engine/internal/domain/entity"

// DifalRepository persiste os registros de auditoria de cálculo de DIFAL.
// Só há inserção e leitura: o registro é imutável.
type DifalRepository interface {
	Create(calc *entity.DifalCalculation) error
	// List devolve os cálculos mais recentes primeiro; ufOrigem/ufDestino
	// vazios não filtram.
	List(companyID, ufOrigem, ufDestino string, limit int) ([]*entity.DifalCalculation, error)
}

package fiscal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/entity"
	domfiscal "github.com/tributa/fiscal-engine/internal/domain/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain/repository"
	"github.com/tributa/fiscal-engine/pkg/logger"
)

// ObligationUseCase gerencia o ciclo de vida das obrigações acessórias e o
// calendário fiscal da empresa.
type ObligationUseCase struct {
	repo repository.ObligationRepository
	log  *logger.Logger
}

// NewObligationUseCase constrói o caso de uso.
func NewObligationUseCase(repo repository.ObligationRepository, log *logger.Logger) *ObligationUseCase {
	return &ObligationUseCase{repo: repo, log: log}
}

// Generate cria em PENDING as obrigações do período que ainda não existem.
// Idempotente: chamadas repetidas para o mesmo período não duplicam linhas
// (chave natural companyID, code, year, month). Codes vazio = todas.
func (uc *ObligationUseCase) Generate(companyID string, in dto.GenerateObligationsRequest) ([]dto.ObligationResponse, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}

	defs := domfiscal.ObligationDefinitions()
	if len(in.Codes) > 0 {
		selected := make([]domfiscal.ObligationDefinition, 0, len(in.Codes))
		for _, code := range in.Codes {
			def, err := domfiscal.FindObligationDefinition(code)
			if err != nil {
				return nil, err
			}
			selected = append(selected, def)
		}
		defs = selected
	}

	now := time.Now()
	created := 0
	out := make([]dto.ObligationResponse, 0, len(defs))
	for _, def := range defs {
		existing, err := uc.repo.GetByNaturalKey(companyID, def.Code, in.Year, in.Month)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			due, err := domfiscal.ObligationDueDate(def.Code, in.Year, in.Month)
			if err != nil {
				return nil, err
			}
			existing = &entity.FiscalObligation{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				Code:      def.Code,
				Year:      in.Year,
				Month:     in.Month,
				DueDate:   due,
				Status:    entity.ObligationStatusPending,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := uc.repo.Create(existing); err != nil {
				// Duas gerações concorrentes: a constraint única decide e o
				// perdedor relê a linha vencedora.
				if errors.Is(err, domain.ErrDuplicate) {
					existing, err = uc.repo.GetByNaturalKey(companyID, def.Code, in.Year, in.Month)
					if err != nil {
						return nil, err
					}
				} else {
					return nil, err
				}
			} else {
				created++
			}
		}
		out = append(out, obligationToResponse(existing, def.Name))
	}
	uc.log.Info().
		Str("company_id", companyID).
		Int("year", in.Year).Int("month", in.Month).
		Int("created", created).
		Msg("obrigações do período geradas")
	return out, nil
}

// UpdateStatus muda o estado de uma obrigação do tenant. A transição completa
// não é imposta (o subsistema de transmissão pode saltar estados), mas:
// ACCEPTED/REJECTED exigem TRANSMITTED, GENERATING só é alcançável de
// PENDING ou RECTIFIED, e RECTIFIED só de REJECTED.
func (uc *ObligationUseCase) UpdateStatus(companyID, id string, in dto.UpdateObligationStatusRequest) (*dto.ObligationResponse, error) {
	ob, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if ob == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateObligationTransition(ob.Status, in); err != nil {
		return nil, err
	}

	ob.Status = in.Status
	if in.ReceiptNumber != "" {
		ob.ReceiptNumber = in.ReceiptNumber
	}
	if in.FileName != "" {
		ob.FileName = in.FileName
	}
	if in.FileContent != "" {
		ob.FileContent = in.FileContent
	}
	if in.ErrorMessage != "" {
		ob.ErrorMessage = in.ErrorMessage
	}
	ob.UpdatedAt = time.Now()
	if err := uc.repo.Update(ob); err != nil {
		return nil, err
	}
	resp := obligationToResponse(ob, "")
	return &resp, nil
}

// List lista as obrigações do período (status vazio = todos).
func (uc *ObligationUseCase) List(companyID string, year, month int, status string) ([]dto.ObligationResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	if status != "" && !validObligationStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByPeriod(companyID, year, month, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ObligationResponse, 0, len(list))
	for _, ob := range list {
		out = append(out, obligationToResponse(ob, ""))
	}
	return out, nil
}

// Calendar monta o calendário fiscal do período: toda obrigação conhecida com
// seu vencimento calculado e o status atual, ou NOT_GENERATED quando a empresa
// ainda não gerou aquela obrigação. Não muta estado (planejamento apenas).
func (uc *ObligationUseCase) Calendar(companyID string, year, month int) ([]dto.CalendarEntryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	existing, err := uc.repo.ListByPeriod(companyID, year, month, "")
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*entity.FiscalObligation, len(existing))
	for _, ob := range existing {
		byCode[ob.Code] = ob
	}

	defs := domfiscal.ObligationDefinitions()
	out := make([]dto.CalendarEntryResponse, 0, len(defs))
	for _, def := range defs {
		due, err := domfiscal.ObligationDueDate(def.Code, year, month)
		if err != nil {
			return nil, err
		}
		entry := dto.CalendarEntryResponse{
			Code:        def.Code,
			Name:        def.Name,
			Periodicity: def.Periodicity,
			DueDate:     due.Format("2006-01-02"),
			Status:      "NOT_GENERATED",
		}
		if ob, ok := byCode[def.Code]; ok {
			entry.Status = ob.Status
			entry.ObligationID = ob.ID
		}
		out = append(out, entry)
	}
	return out, nil
}

// validateObligationTransition aplica as regras mínimas do grafo de estados e
// valida os campos extras contra a transição pedida.
func validateObligationTransition(current string, in dto.UpdateObligationStatusRequest) error {
	if !validObligationStatus(in.Status) {
		return domain.ErrInvalidInput
	}
	switch in.Status {
	case entity.ObligationStatusAccepted, entity.ObligationStatusRejected:
		if current != entity.ObligationStatusTransmitted {
			return domain.ErrInvalidState
		}
	case entity.ObligationStatusGenerating:
		if current != entity.ObligationStatusPending && current != entity.ObligationStatusRectified {
			return domain.ErrInvalidState
		}
	case entity.ObligationStatusRectified:
		if current != entity.ObligationStatusRejected {
			return domain.ErrInvalidState
		}
	}
	// Campos extras só fazem sentido em transições específicas.
	if in.ReceiptNumber != "" && in.Status != entity.ObligationStatusAccepted {
		return domain.ErrInvalidInput
	}
	if in.ErrorMessage != "" && in.Status != entity.ObligationStatusRejected {
		return domain.ErrInvalidInput
	}
	if (in.FileName != "" || in.FileContent != "") && in.Status != entity.ObligationStatusGenerated {
		return domain.ErrInvalidInput
	}
	return nil
}

func validObligationStatus(status string) bool {
	switch status {
	case entity.ObligationStatusPending, entity.ObligationStatusGenerating,
		entity.ObligationStatusGenerated, entity.ObligationStatusTransmitted,
		entity.ObligationStatusAccepted, entity.ObligationStatusRejected,
		entity.ObligationStatusRectified:
		return true
	}
	return false
}

func obligationToResponse(ob *entity.FiscalObligation, name string) dto.ObligationResponse {
	return dto.ObligationResponse{
		ID:            ob.ID,
		CompanyID:     ob.CompanyID,
		Code:          ob.Code,
		Name:          name,
		Year:          ob.Year,
		Month:         ob.Month,
		DueDate:       ob.DueDate.Format("2006-01-02"),
		Status:        ob.Status,
		ReceiptNumber: ob.ReceiptNumber,
		FileName:      ob.FileName,
		ErrorMessage:  ob.ErrorMessage,
	}
}

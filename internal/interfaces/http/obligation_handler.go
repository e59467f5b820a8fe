package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain"
)

// ObligationHandler trata as requisições HTTP de obrigações acessórias (protegido).
type ObligationHandler struct {
	uc *fiscal.ObligationUseCase
}

// NewObligationHandler constrói o handler.
func NewObligationHandler(uc *fiscal.ObligationUseCase) *ObligationHandler {
	return &ObligationHandler{uc: uc}
}

// Generate godoc
// @Summary      Gerar as obrigações do período
// @Description  Cria as obrigações do calendário para o período em PENDING.
//
//	Idempotente: obrigações já existentes são devolvidas sem duplicar.
//
// @Tags         obligations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateObligationsRequest  true  "year, month, codes (vazio = todas)"
// @Success      200   {array}   dto.ObligationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/obligations/generate [post]
func (h *ObligationHandler) Generate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.GenerateObligationsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	list, err := h.uc.Generate(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrUnknownCode) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período ou código de obrigação inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Avançar o status de uma obrigação
// @Tags         obligations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID da obrigação"
// @Param        body  body  dto.UpdateObligationStatusRequest  true  "status + campos da transição"
// @Success      200   {object}  dto.ObligationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal/obligations/{id}/status [put]
func (h *ObligationHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.UpdateObligationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateStatus(companyID, id, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status ou campos da transição inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "obrigação não encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transição de status não permitida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar as obrigações do período
// @Tags         obligations
// @Security     Bearer
// @Produce      json
// @Param        year    query  int     true   "Ano de referência"
// @Param        month   query  int     true   "Mês de referência"
// @Param        status  query  string  false  "Filtrar por status"
// @Success      200  {array}   dto.ObligationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/obligations [get]
func (h *ObligationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	status := c.Query("status")
	list, err := h.uc.List(companyID, year, month, status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período ou status inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Calendar godoc
// @Summary      Calendário fiscal do período
// @Description  Cruza as obrigações conhecidas com as já geradas no período;
//
//	as ausentes aparecem como NOT_GENERATED.
//
// @Tags         obligations
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  true  "Ano de referência"
// @Param        month  query  int  true  "Mês de referência"
// @Success      200  {array}   dto.CalendarEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/calendar [get]
func (h *ObligationHandler) Calendar(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	entries, err := h.uc.Calendar(companyID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(entries)
}

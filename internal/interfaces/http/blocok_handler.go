package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain"
)

// BlocoKHandler trata as requisições HTTP do Bloco K (protegido).
type BlocoKHandler struct {
	uc *fiscal.BlocoKUseCase
}

// NewBlocoKHandler constrói o handler.
func NewBlocoKHandler(uc *fiscal.BlocoKUseCase) *BlocoKHandler {
	return &BlocoKHandler{uc: uc}
}

// Generate godoc
// @Summary      Regerar os registros do Bloco K do período
// @Description  Deriva K200/K220/K230/K235 das movimentações e saldos de
//
//	estoque. Substitui integralmente o conjunto anterior do período.
//
// @Tags         blocok
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBlocoKRequest  true  "year, month"
// @Success      200   {array}   dto.BlocoKRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/blocok/generate [post]
func (h *BlocoKHandler) Generate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.GenerateBlocoKRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Generate(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar os registros gerados do período
// @Tags         blocok
// @Security     Bearer
// @Produce      json
// @Param        year         query  int     true   "Ano de referência"
// @Param        month        query  int     true   "Mês de referência"
// @Param        record_type  query  string  false  "K200 | K220 | K230 | K235"
// @Success      200  {array}   dto.BlocoKRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/blocok [get]
func (h *BlocoKHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	in := dto.ListBlocoKRequest{
		Year:       c.QueryInt("year"),
		Month:      c.QueryInt("month"),
		RecordType: c.Query("record_type"),
	}
	list, err := h.uc.List(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período ou tipo de registro inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

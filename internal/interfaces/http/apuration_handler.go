package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain"
)

// ApurationHandler trata as requisições HTTP do livro de apuração (protegido).
type ApurationHandler struct {
	uc *fiscal.ApurationUseCase
}

// NewApurationHandler constrói o handler.
func NewApurationHandler(uc *fiscal.ApurationUseCase) *ApurationHandler {
	return &ApurationHandler{uc: uc}
}

// GetOrCreate godoc
// @Summary      Abrir (ou buscar) a apuração do período
// @Description  Devolve a apuração de (tax_type, year, month); cria zerada se
//
//	ainda não existir. Idempotente.
//
// @Tags         apurations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GetOrCreateApurationRequest  true  "tax_type, year, month"
// @Success      200   {object}  dto.ApurationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/apurations [post]
func (h *ApurationHandler) GetOrCreate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.GetOrCreateApurationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.GetOrCreate(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de imposto ou período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Lançar crédito/débito na apuração
// @Description  Insere o item e recomputa os totais na mesma transação.
// @Tags         apurations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID da apuração"
// @Param        body  body  dto.AddApurationItemRequest  true  "lançamento"
// @Success      200   {object}  dto.ApurationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal/apurations/{id}/items [post]
func (h *ApurationHandler) AddItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.AddApurationItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), companyID, id, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lançamento inválido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "apuração não encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "APURATION_CLOSED", Message: "apuração encerrada não aceita lançamentos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Encerrar a apuração do período
// @Tags         apurations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseApurationRequest  true  "tax_type, year, month"
// @Success      200   {object}  dto.ApurationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal/apurations/close [post]
func (h *ApurationHandler) Close(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseApurationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de imposto ou período inválido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "apuração não encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CLOSED", Message: "apuração já encerrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar as apurações do período
// @Tags         apurations
// @Security     Bearer
// @Produce      json
// @Param        year      query  int     true   "Ano de referência"
// @Param        month     query  int     true   "Mês de referência"
// @Param        tax_type  query  string  false  "Filtrar por imposto"
// @Success      200  {array}   dto.ApurationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/apurations [get]
func (h *ApurationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.List(companyID, c.QueryInt("year"), c.QueryInt("month"), c.Query("tax_type"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período ou imposto inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Summary godoc
// @Summary      Resumo de apuração do período
// @Tags         apurations
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  true  "Ano de referência"
// @Param        month  query  int  true  "Mês de referência"
// @Success      200  {object}  dto.ApurationSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/apurations/summary [get]
func (h *ApurationHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Summary(companyID, c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Resumo de apuração em PDF
// @Tags         apurations
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   query  int  true  "Ano de referência"
// @Param        month  query  int  true  "Mês de referência"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/apurations/report [get]
func (h *ApurationHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	pdfBytes, err := h.uc.SummaryPDF(c.Context(), companyID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="apuracao-%d-%02d.pdf"`, year, month))
	return c.Send(pdfBytes)
}

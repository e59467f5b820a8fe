package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain"
)

// DifalHandler trata as requisições HTTP de cálculo de DIFAL (protegido).
type DifalHandler struct {
	uc *fiscal.DifalUseCase
}

// NewDifalHandler constrói o handler.
func NewDifalHandler(uc *fiscal.DifalUseCase) *DifalHandler {
	return &DifalHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular DIFAL/FCP de operação interestadual
// @Description  Calcula e persiste o registro de auditoria do cálculo.
// @Tags         difal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateDifalRequest  true  "operação"
// @Success      201   {object}  dto.DifalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/difal [post]
func (h *DifalHandler) Calculate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CalculateDifalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Calculate(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUF) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_UF", Message: "UF de origem ou destino desconhecida"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "valores ou alíquotas inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Histórico de cálculos de DIFAL
// @Tags         difal
// @Security     Bearer
// @Produce      json
// @Param        uf_origem   query  string  false  "Filtrar por UF de origem"
// @Param        uf_destino  query  string  false  "Filtrar por UF de destino"
// @Param        limit       query  int     false  "Máximo de registros (padrão 50, teto 100)"
// @Success      200  {array}   dto.DifalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/difal [get]
func (h *DifalHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	in := dto.ListDifalRequest{
		UFOrigem:  c.Query("uf_origem"),
		UFDestino: c.Query("uf_destino"),
		Limit:     c.QueryInt("limit"),
	}
	list, err := h.uc.List(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUF) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_UF", Message: "UF de filtro desconhecida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	"github.com/tributa/fiscal-engine/internal/domain"
)

// NfseHandler trata as requisições HTTP de NFS-e e configuração municipal (protegido).
type NfseHandler struct {
	uc *fiscal.NfseUseCase
}

// NewNfseHandler constrói o handler.
func NewNfseHandler(uc *fiscal.NfseUseCase) *NfseHandler {
	return &NfseHandler{uc: uc}
}

// GetConfig godoc
// @Summary      Configuração municipal da empresa
// @Description  Segredos (password, token) retornam mascarados.
// @Tags         nfse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NfseConfigResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal/nfse/config [get]
func (h *NfseHandler) GetConfig(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetConfig(companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "configuração não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpsertConfig godoc
// @Summary      Gravar a configuração municipal
// @Description  Password/Token em claro são cifrados antes de persistir;
//
//	vazios preservam o segredo já gravado.
//
// @Tags         nfse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertNfseConfigRequest  true  "configuração"
// @Success      200   {object}  dto.NfseConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/nfse/config [put]
func (h *NfseHandler) UpsertConfig(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpsertNfseConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpsertConfig(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "configuração inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Emitir NFS-e
// @Description  Calcula os valores da nota e a grava em DRAFT com o próximo
//
//	número sequencial da empresa.
//
// @Tags         nfse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNfseRequest  true  "nota"
// @Success      201   {object}  dto.NfseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/nfse [post]
func (h *NfseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateNfseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados da nota inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalhe de uma NFS-e
// @Tags         nfse
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.NfseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal/nfse/{id} [get]
func (h *NfseHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.uc.Get(companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar NFS-e
// @Description  Transição terminal única: segunda tentativa responde 409.
// @Tags         nfse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID da nota"
// @Param        body  body  dto.CancelNfseRequest  true  "motivo"
// @Success      200   {object}  dto.NfseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal/nfse/{id}/cancel [post]
func (h *NfseHandler) Cancel(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.CancelNfseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Cancel(c.Context(), companyID, id, in.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "motivo requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
		}
		if errors.Is(err, domain.ErrAlreadyCancelled) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: "nota já cancelada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar NFS-e da empresa
// @Tags         nfse
// @Security     Bearer
// @Produce      json
// @Param        status           query  string  false  "Filtrar por status"
// @Param        competence_from  query  string  false  "Competência inicial (AAAA-MM-DD)"
// @Param        competence_to    query  string  false  "Competência final (AAAA-MM-DD)"
// @Param        customer_id      query  string  false  "Filtrar por cliente"
// @Param        limit            query  int     false  "Máximo por página (padrão 50, teto 100)"
// @Param        offset           query  int     false  "Deslocamento"
// @Success      200  {array}   dto.NfseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/nfse [get]
func (h *NfseHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ListNfseRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	list, err := h.uc.List(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

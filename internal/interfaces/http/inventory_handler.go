package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/inventory"
	"github.com/beanshub/roastery-api/internal/domain"
)

// InventoryHandler maneja los lotes de café verde.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar lotes de café verde
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.GreenBeanResponse
// @Router       /api/green-beans [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListGreenBeans())
}

// LowStock godoc
// @Summary      Listar lotes con stock bajo
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.GreenBeanResponse
// @Router       /api/green-beans/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	return c.JSON(h.uc.LowStock())
}

// Create godoc
// @Summary      Registrar lote de café verde
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGreenBeanRequest  true  "datos del lote"
// @Success      201   {object}  dto.GreenBeanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/green-beans [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGreenBeanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	bean, err := h.uc.AddGreenBean(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Terjadi kesalahan saat menambahkan biji kopi"})
	}
	return c.Status(fiber.StatusCreated).JSON(bean)
}

// Update godoc
// @Summary      Actualizar lote (patch parcial)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "id del lote"
// @Param        body  body  dto.UpdateGreenBeanRequest  true  "campos a modificar"
// @Success      200   {object}  dto.GreenBeanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/green-beans/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGreenBeanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	bean, err := h.uc.UpdateGreenBean(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el lote no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(bean)
}

// Delete godoc
// @Summary      Eliminar lote
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "id del lote"
// @Success      204
// @Router       /api/green-beans/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteGreenBean(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

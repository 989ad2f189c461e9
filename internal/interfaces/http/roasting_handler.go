package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/roasting"
	"github.com/beanshub/roastery-api/internal/domain"
)

// RoastingHandler maneja perfiles y sesiones de tostado.
type RoastingHandler struct {
	uc *roasting.UseCase
}

// NewRoastingHandler construye el handler de tostado.
func NewRoastingHandler(uc *roasting.UseCase) *RoastingHandler {
	return &RoastingHandler{uc: uc}
}

// ListProfiles godoc
// @Summary      Listar perfiles de tostado
// @Tags         roasting
// @Produce      json
// @Success      200  {array}  entity.RoastingProfile
// @Router       /api/roasting/profiles [get]
func (h *RoastingHandler) ListProfiles(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListProfiles())
}

// CreateProfile godoc
// @Summary      Crear perfil de tostado
// @Tags         roasting
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProfileRequest  true  "datos del perfil"
// @Success      201   {object}  entity.RoastingProfile
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/roasting/profiles [post]
func (h *RoastingHandler) CreateProfile(c *fiber.Ctx) error {
	var in dto.CreateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	profile, err := h.uc.CreateProfile(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil (patch parcial)
// @Tags         roasting
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "id del perfil"
// @Param        body  body  map[string]any  true  "campos a modificar"
// @Success      200   {object}  entity.RoastingProfile
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roasting/profiles/{id} [put]
func (h *RoastingHandler) UpdateProfile(c *fiber.Ctx) error {
	patch := map[string]any{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	profile, err := h.uc.UpdateProfile(c.Context(), c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el perfil no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(profile)
}

// DeleteProfile godoc
// @Summary      Eliminar perfil
// @Tags         roasting
// @Produce      json
// @Param        id  path  string  true  "id del perfil"
// @Success      204
// @Router       /api/roasting/profiles/{id} [delete]
func (h *RoastingHandler) DeleteProfile(c *fiber.Ctx) error {
	if err := h.uc.DeleteProfile(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSessions godoc
// @Summary      Listar sesiones de tostado
// @Tags         roasting
// @Produce      json
// @Success      200  {array}  entity.RoastingSession
// @Router       /api/roasting/sessions [get]
func (h *RoastingHandler) ListSessions(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListSessions())
}

// CreateSession godoc
// @Summary      Registrar sesión de tostado
// @Tags         roasting
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "datos de la sesión"
// @Success      201   {object}  entity.RoastingSession
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roasting/sessions [post]
func (h *RoastingHandler) CreateSession(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.CreateSession(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

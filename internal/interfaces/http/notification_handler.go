package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/notification"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/state"
)

// NotificationHandler maneja los avisos.
type NotificationHandler struct {
	uc    *notification.UseCase
	store *state.Store
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(uc *notification.UseCase, store *state.Store) *NotificationHandler {
	return &NotificationHandler{uc: uc, store: store}
}

// List godoc
// @Summary      Listar notificaciones (más recientes primero)
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  entity.Notification
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.State().Notifications)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "id de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la notificación no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

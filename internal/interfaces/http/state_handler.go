package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/state"
)

// StateHandler expone el árbol de estado sincronizado.
type StateHandler struct {
	store *state.Store
}

// NewStateHandler construye el handler de estado.
func NewStateHandler(store *state.Store) *StateHandler {
	return &StateHandler{store: store}
}

// Get godoc
// @Summary      Snapshot completo del estado con su versión
// @Tags         state
// @Produce      json
// @Success      200  {object}  state.Snapshot
// @Router       /api/state [get]
func (h *StateHandler) Get(c *fiber.Ctx) error {
	return c.JSON(state.Snapshot{Version: h.store.Version(), State: h.store.State()})
}

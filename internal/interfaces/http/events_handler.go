package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// EventsHandler stream SSE de snapshots de estado. Cada despacho del árbol
// produce un evento "state" con la versión y el estado completo.
type EventsHandler struct {
	store *state.Store
	log   *logger.Logger
}

// NewEventsHandler construye el handler de eventos.
func NewEventsHandler(store *state.Store, log *logger.Logger) *EventsHandler {
	return &EventsHandler{store: store, log: log}
}

// Stream godoc
// @Summary      Stream de snapshots de estado (Server-Sent Events)
// @Tags         state
// @Produce      text/event-stream
// @Success      200
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// Buffer acotado: un cliente lento pierde snapshots intermedios pero el
	// siguiente que reciba es completo, así que nunca queda inconsistente.
	snaps := make(chan state.Snapshot, 8)
	cancel := h.store.Watch(func(s state.Snapshot) {
		select {
		case snaps <- s:
		default:
		}
	})

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		if err := writeEvent(w, state.Snapshot{Version: h.store.Version(), State: h.store.State()}); err != nil {
			return
		}
		keep := time.NewTicker(25 * time.Second)
		defer keep.Stop()

		for {
			select {
			case <-keep.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case snap := <-snaps:
				if err := writeEvent(w, snap); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, snap state.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", b); err != nil {
		return err
	}
	return w.Flush()
}

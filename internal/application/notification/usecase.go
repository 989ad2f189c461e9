// Package notification maneja los avisos de la UI: creación por parte de los
// demás casos de uso y marcado de leídos con actualización optimista.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// UseCase casos de uso de notificaciones.
type UseCase struct {
	notifications *service.Collection[entity.Notification]
	store         *state.Store
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(services *service.Services, store *state.Store, log *logger.Logger) *UseCase {
	return &UseCase{notifications: services.Notifications, store: store, log: log}
}

// Notify crea un aviso (timestamp ahora, no leído) y lo antepone en el estado
// de forma optimista, sin esperar al próximo snapshot.
func (uc *UseCase) Notify(ctx context.Context, typ, title, message string) error {
	n := entity.Notification{
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
		Read:      false,
	}
	id, err := uc.notifications.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("crear notificación: %w", err)
	}
	n.ID = id
	uc.store.Dispatch(state.AddNotification{Notification: n})
	return nil
}

// MarkRead marca un aviso como leído: primero el despacho optimista (no-op si
// el id no existe en el estado) y después el patch contra el almacén.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	uc.store.Dispatch(state.MarkNotificationRead{ID: id})
	if err := uc.notifications.Update(ctx, id, map[string]any{"read": true}); err != nil {
		uc.log.Warn().Err(err).Str("id", id).Msg("marcar notificación leída")
		return err
	}
	return nil
}

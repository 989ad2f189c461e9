// Package sync implementa la capa de sincronización: seis streams de
// suscripción independientes fundidos en un único estado coherente
// (eventualmente consistente), con estado de carga/error combinado y
// desmontaje en una sola llamada.
package sync

import (
	stdsync "sync"

	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// Mensaje de error combinado cuando alguna suscripción no pudo registrarse.
const errConnectMessage = "Failed to connect to database"

// Syncer abre una suscripción por colección y vuelca cada snapshot entrante
// en su slot del estado central. No hay atomicidad entre colecciones: cada
// slot se reemplaza al por mayor cuando llega su snapshot, sin esperar a los
// demás.
type Syncer struct {
	services *service.Services
	store    *state.Store
	log      *logger.Logger

	mu      stdsync.Mutex
	unsubs  []docstore.Unsubscribe
	started bool
	closed  stdsync.Once
}

// NewSyncer construye la capa de sincronización.
func NewSyncer(services *service.Services, store *state.Store, log *logger.Logger) *Syncer {
	return &Syncer{services: services, store: store, log: log}
}

// Start registra las seis suscripciones. Loading pasa a false cuando el
// registro termina (no cuando llegan los primeros datos). Si alguna falla se
// fija el error combinado igualmente con loading en false, y las que sí
// abrieron siguen entregando (estado best-effort).
func (s *Syncer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true

	var firstErr error
	register := func(name string, open func() (docstore.Unsubscribe, error)) {
		unsub, err := open()
		if err != nil {
			s.log.Error().Err(err).Str("collection", name).Msg("registrar suscripción")
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		s.unsubs = append(s.unsubs, unsub)
	}

	register(service.CollUsers, func() (docstore.Unsubscribe, error) {
		return s.services.Users.Subscribe(func(users []entity.User) {
			s.store.Dispatch(state.SetData{Patch: state.Patch{Users: &users}})
		})
	})
	register(service.CollGreenBeans, func() (docstore.Unsubscribe, error) {
		return s.services.GreenBeans.Subscribe(func(beans []entity.GreenBean) {
			s.store.Dispatch(state.SetData{Patch: state.Patch{GreenBeans: &beans}})
		})
	})
	register(service.CollRoastingProfiles, func() (docstore.Unsubscribe, error) {
		return s.services.RoastingProfiles.Subscribe(func(profiles []entity.RoastingProfile) {
			s.store.Dispatch(state.SetData{Patch: state.Patch{RoastingProfiles: &profiles}})
		})
	})
	register(service.CollRoastingSessions, func() (docstore.Unsubscribe, error) {
		return s.services.RoastingSessions.Subscribe(func(sessions []entity.RoastingSession) {
			s.store.Dispatch(state.SetData{Patch: state.Patch{RoastingSessions: &sessions}})
		})
	})
	register(service.CollSales, func() (docstore.Unsubscribe, error) {
		return s.services.Sales.Subscribe(func(sales []entity.Sale) {
			s.store.Dispatch(state.SetData{Patch: state.Patch{Sales: &sales}})
		})
	})
	register(service.CollNotifications, func() (docstore.Unsubscribe, error) {
		return s.services.Notifications.Subscribe(func(ns []entity.Notification) {
			s.store.Dispatch(state.SetData{Patch: state.Patch{Notifications: &ns}})
		})
	})

	loading := false
	patch := state.Patch{Loading: &loading}
	if firstErr != nil {
		msg := errConnectMessage
		patch.Error = &msg
	}
	s.store.Dispatch(state.SetData{Patch: patch})
	return firstErr
}

// Close cancela todas las suscripciones exactamente una vez; llamarlo de
// nuevo no hace nada.
func (s *Syncer) Close() {
	s.closed.Do(func() {
		s.mu.Lock()
		unsubs := s.unsubs
		s.unsubs = nil
		s.mu.Unlock()
		for _, unsub := range unsubs {
			unsub()
		}
	})
}

// Active devuelve cuántas suscripciones siguen registradas.
func (s *Syncer) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unsubs)
}

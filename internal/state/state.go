// Package state implementa el árbol de estado central de la aplicación:
// un reducer puro sobre acciones tipadas, aplicado en serie por un Store con
// ciclo de vida explícito (se construye una vez por sesión y se pasa por
// referencia, nunca como singleton ambiente).
package state

import "github.com/beanshub/roastery-api/internal/domain/entity"

// AppState es el snapshot completo: usuario autenticado, las seis colecciones
// (caché de lo último conocido, la autoridad es el almacén remoto) y los flags
// de UI. Error vacío significa sin error.
type AppState struct {
	User             *entity.User
	Users            []entity.User
	GreenBeans       []entity.GreenBean
	RoastingProfiles []entity.RoastingProfile
	RoastingSessions []entity.RoastingSession
	Sales            []entity.Sale
	Notifications    []entity.Notification
	Loading          bool
	Error            string
}

// Initial devuelve el estado de arranque: colecciones vacías, cargando.
func Initial() AppState {
	return AppState{Loading: true}
}

// clone copia el estado con slices nuevos, para que los snapshots entregados
// a observadores no compartan memoria con el árbol vivo.
func (s AppState) clone() AppState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Users = copySlice(s.Users)
	out.GreenBeans = copySlice(s.GreenBeans)
	out.RoastingProfiles = copySlice(s.RoastingProfiles)
	out.RoastingSessions = copySlice(s.RoastingSessions)
	out.Sales = copySlice(s.Sales)
	out.Notifications = copySlice(s.Notifications)
	return out
}

func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

package state

import "github.com/beanshub/roastery-api/internal/domain/entity"

// Reduce aplica una acción y devuelve el estado resultante. Es una función
// pura: nunca muta el estado recibido; las colecciones tocadas salen en un
// slice nuevo aunque el contenido no cambie (update/delete sin match).
//
// Las altas optimistas son idempotentes por id: si el snapshot de la
// suscripción ya trajo el documento, el despacho posterior lo reemplaza en
// lugar de duplicarlo. El orden entre snapshot y despacho optimista depende
// del backend, así que ambos órdenes deben converger al mismo estado.
func Reduce(s AppState, a Action) AppState {
	switch act := a.(type) {
	case SetData:
		return applyPatch(s, act.Patch)
	case SetUser:
		s.User = act.User
		return s
	case SetLoading:
		s.Loading = act.Loading
		return s
	case SetError:
		s.Error = act.Message
		return s

	case AddUser:
		s.Users = upsertByID(s.Users, act.User, func(u entity.User) string { return u.ID })
		return s
	case UpdateUser:
		s.Users = replaceByID(s.Users, act.User.ID, act.User, func(u entity.User) string { return u.ID })
		return s
	case DeleteUser:
		s.Users = removeByID(s.Users, act.ID, func(u entity.User) string { return u.ID })
		return s

	case AddGreenBean:
		s.GreenBeans = upsertByID(s.GreenBeans, act.Bean, func(b entity.GreenBean) string { return b.ID })
		return s
	case UpdateGreenBean:
		s.GreenBeans = replaceByID(s.GreenBeans, act.Bean.ID, act.Bean, func(b entity.GreenBean) string { return b.ID })
		return s
	case DeleteGreenBean:
		s.GreenBeans = removeByID(s.GreenBeans, act.ID, func(b entity.GreenBean) string { return b.ID })
		return s

	case AddRoastingProfile:
		s.RoastingProfiles = upsertByID(s.RoastingProfiles, act.Profile, func(p entity.RoastingProfile) string { return p.ID })
		return s
	case UpdateRoastingProfile:
		s.RoastingProfiles = replaceByID(s.RoastingProfiles, act.Profile.ID, act.Profile, func(p entity.RoastingProfile) string { return p.ID })
		return s
	case DeleteRoastingProfile:
		s.RoastingProfiles = removeByID(s.RoastingProfiles, act.ID, func(p entity.RoastingProfile) string { return p.ID })
		return s

	case AddRoastingSession:
		s.RoastingSessions = upsertByID(s.RoastingSessions, act.Session, func(r entity.RoastingSession) string { return r.ID })
		return s

	case AddSale:
		s.Sales = upsertByID(s.Sales, act.Sale, func(v entity.Sale) string { return v.ID })
		return s

	case AddNotification:
		// Antepone: el orden del almacén es timestamp descendente. Si el
		// snapshot ya la trajo, se reemplaza en su posición.
		for i, n := range s.Notifications {
			if n.ID == act.Notification.ID {
				out := make([]entity.Notification, len(s.Notifications))
				copy(out, s.Notifications)
				out[i] = act.Notification
				s.Notifications = out
				return s
			}
		}
		out := make([]entity.Notification, 0, len(s.Notifications)+1)
		out = append(out, act.Notification)
		out = append(out, s.Notifications...)
		s.Notifications = out
		return s
	case MarkNotificationRead:
		out := make([]entity.Notification, len(s.Notifications))
		for i, n := range s.Notifications {
			if n.ID == act.ID {
				n.Read = true
			}
			out[i] = n
		}
		s.Notifications = out
		return s
	}
	return s
}

func applyPatch(s AppState, p Patch) AppState {
	if p.Users != nil {
		s.Users = *p.Users
	}
	if p.GreenBeans != nil {
		s.GreenBeans = *p.GreenBeans
	}
	if p.RoastingProfiles != nil {
		s.RoastingProfiles = *p.RoastingProfiles
	}
	if p.RoastingSessions != nil {
		s.RoastingSessions = *p.RoastingSessions
	}
	if p.Sales != nil {
		s.Sales = *p.Sales
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.Loading != nil {
		s.Loading = *p.Loading
	}
	if p.Error != nil {
		s.Error = *p.Error
	}
	return s
}

// upsertByID reemplaza el elemento con el mismo id si ya está, o lo agrega al
// final. Siempre devuelve un slice nuevo.
func upsertByID[T any](list []T, item T, getID func(T) string) []T {
	id := getID(item)
	out := make([]T, len(list))
	copy(out, list)
	for i, e := range list {
		if getID(e) == id {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

// replaceByID devuelve un slice nuevo con el elemento de ese id sustituido;
// sin match el contenido queda idéntico.
func replaceByID[T any](list []T, id string, item T, getID func(T) string) []T {
	out := make([]T, len(list))
	for i, e := range list {
		if getID(e) == id {
			out[i] = item
		} else {
			out[i] = e
		}
	}
	return out
}

func removeByID[T any](list []T, id string, getID func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		if getID(e) != id {
			out = append(out, e)
		}
	}
	return out
}

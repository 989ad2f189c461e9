package service

import (
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
)

// Nombres de las seis colecciones del almacén.
const (
	CollUsers            = "users"
	CollGreenBeans       = "greenBeans"
	CollRoastingProfiles = "roastingProfiles"
	CollRoastingSessions = "roastingSessions"
	CollSales            = "sales"
	CollNotifications    = "notifications"
)

// Orders devuelve la clave de ordenamiento por colección: sesiones, ventas y
// notificaciones descienden por su fecha; el resto queda en orden de inserción.
func Orders() map[string]docstore.Order {
	return map[string]docstore.Order{
		CollRoastingSessions: {Field: "roastDate", Descending: true},
		CollSales:            {Field: "saleDate", Descending: true},
		CollNotifications:    {Field: "timestamp", Descending: true},
	}
}

// Services agrupa los seis servicios de acceso, uno por tipo de entidad.
type Services struct {
	Users            *Collection[entity.User]
	GreenBeans       *Collection[entity.GreenBean]
	RoastingProfiles *Collection[entity.RoastingProfile]
	RoastingSessions *Collection[entity.RoastingSession]
	Sales            *Collection[entity.Sale]
	Notifications    *Collection[entity.Notification]
}

// New instancia los servicios sobre el almacén dado.
func New(store docstore.Store) *Services {
	return &Services{
		Users:            NewCollection[entity.User](store, CollUsers),
		GreenBeans:       NewCollection[entity.GreenBean](store, CollGreenBeans),
		RoastingProfiles: NewCollection[entity.RoastingProfile](store, CollRoastingProfiles),
		RoastingSessions: NewCollection[entity.RoastingSession](store, CollRoastingSessions),
		Sales:            NewCollection[entity.Sale](store, CollSales),
		Notifications:    NewCollection[entity.Notification](store, CollNotifications),
	}
}

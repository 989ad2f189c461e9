package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/state"
)

// Reloj fijo: 15 de marzo de 2024, mediodía UTC.
var ahora = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func buildDashboard(st state.AppState) *UseCase {
	store := state.NewStore()
	store.Dispatch(state.SetData{Patch: state.Patch{
		GreenBeans:       &st.GreenBeans,
		Sales:            &st.Sales,
		RoastingSessions: &st.RoastingSessions,
		Notifications:    &st.Notifications,
	}})
	uc := NewUseCase(store)
	uc.now = func() time.Time { return ahora }
	return uc
}

func TestSummary_InventarioYStockBajo(t *testing.T) {
	uc := buildDashboard(state.AppState{
		GreenBeans: []entity.GreenBean{
			{Quantity: 500, PurchasePricePerKg: 85000, LowStockThreshold: 50},
			{Quantity: 25, PurchasePricePerKg: 90000, LowStockThreshold: 50},
		},
	})
	out := uc.Summary()

	assert.Equal(t, 525.0, out.TotalStockKg)
	assert.Equal(t, 1, out.LowStockBatches, "solo el lote de 25kg está bajo umbral")
	// 500*85000 + 25*90000 = 44.750.000
	assert.Equal(t, "Rp44.750.000", out.InventoryValue, "valor de inventario en Rupia formateada")
}

func TestSummary_FacturacionHoyYMes(t *testing.T) {
	uc := buildDashboard(state.AppState{
		Sales: []entity.Sale{
			{Total: 850000, SaleDate: ahora.Add(-2 * time.Hour)},                        // hoy
			{Total: 500000, SaleDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},     // este mes
			{Total: 999999, SaleDate: time.Date(2024, 2, 28, 10, 0, 0, 0, time.UTC)},   // mes pasado
			{Total: 111111, SaleDate: time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC)},  // ayer
		},
	})
	out := uc.Summary()

	assert.Equal(t, "Rp850.000", out.TodayRevenue, "solo la venta de hoy cuenta para hoy")
	// 850.000 + 500.000 + 111.111 = 1.461.111
	assert.Equal(t, "Rp1.461.111", out.MonthRevenue, "el mes incluye desde el día 1")
	assert.Equal(t, "Maret 2024", out.MonthLabel, "etiqueta del mes en indonesio")
}

func TestSummary_SesionesYNoLeidas(t *testing.T) {
	uc := buildDashboard(state.AppState{
		RoastingSessions: []entity.RoastingSession{{ID: "r1"}, {ID: "r2"}},
		Notifications: []entity.Notification{
			{ID: "n1", Read: true},
			{ID: "n2", Read: false},
			{ID: "n3", Read: false},
		},
	})
	out := uc.Summary()

	assert.Equal(t, 2, out.TotalSessions)
	assert.Equal(t, 2, out.UnreadNotifications)
}

func TestSummary_EstadoVacio(t *testing.T) {
	uc := buildDashboard(state.AppState{})
	out := uc.Summary()

	assert.Zero(t, out.TotalStockKg)
	assert.Equal(t, "Rp0", out.InventoryValue)
	assert.Equal(t, "Rp0", out.TodayRevenue)
	assert.Equal(t, "Rp0", out.MonthRevenue)
}

// Package analytics calcula el resumen del tablero a partir del snapshot de
// estado. Los montos se acumulan con decimal para evitar deriva de float en
// sumas largas de Rupia.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/currency"
)

// Meses en indonesio para la etiqueta del período.
var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// UseCase casos de uso del tablero.
type UseCase struct {
	store *state.Store
	now   func() time.Time
}

// NewUseCase construye el caso de uso. El reloj es inyectable para tests.
func NewUseCase(store *state.Store) *UseCase {
	return &UseCase{store: store, now: time.Now}
}

// Summary arma el resumen operativo: stock total, lotes bajos, valor de
// inventario y facturación de hoy y del mes en curso.
func (uc *UseCase) Summary() dto.DashboardSummary {
	st := uc.store.State()
	now := uc.now()

	var totalStock float64
	lowStock := 0
	inventoryValue := decimal.Zero
	for _, b := range st.GreenBeans {
		totalStock += b.Quantity
		if b.IsLowStock() {
			lowStock++
		}
		value := decimal.NewFromFloat(b.Quantity).Mul(decimal.NewFromFloat(b.PurchasePricePerKg))
		inventoryValue = inventoryValue.Add(value)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	todayRevenue := decimal.Zero
	monthRevenue := decimal.Zero
	for _, s := range st.Sales {
		total := decimal.NewFromFloat(s.Total)
		if !s.SaleDate.Before(monthStart) {
			monthRevenue = monthRevenue.Add(total)
		}
		if !s.SaleDate.Before(dayStart) {
			todayRevenue = todayRevenue.Add(total)
		}
	}

	unread := 0
	for _, n := range st.Notifications {
		if !n.Read {
			unread++
		}
	}

	return dto.DashboardSummary{
		TotalStockKg:        totalStock,
		LowStockBatches:     lowStock,
		InventoryValue:      currency.FormatIDRDecimal(inventoryValue),
		TodayRevenue:        currency.FormatIDRDecimal(todayRevenue),
		MonthRevenue:        currency.FormatIDRDecimal(monthRevenue),
		MonthLabel:          monthLabel(now),
		TotalSessions:       len(st.RoastingSessions),
		UnreadNotifications: unread,
	}
}

func monthLabel(t time.Time) string {
	return monthNames[t.Month()-1] + " " + t.Format("2006")
}

package dto

// DashboardSummary resumen operativo y financiero de la tostaduría.
type DashboardSummary struct {
	TotalStockKg        float64 `json:"totalStockKg"`
	LowStockBatches     int     `json:"lowStockBatches"`
	InventoryValue      string  `json:"inventoryValue"` // Rupia formateada
	TodayRevenue        string  `json:"todayRevenue"`
	MonthRevenue        string  `json:"monthRevenue"`
	MonthLabel          string  `json:"monthLabel"`
	TotalSessions       int     `json:"totalSessions"`
	UnreadNotifications int     `json:"unreadNotifications"`
}

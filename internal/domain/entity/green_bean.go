package entity

import "time"

// GreenBean representa un lote de café verde en inventario.
// El estado "stock bajo" es derivado (Quantity vs LowStockThreshold), nunca se persiste.
type GreenBean struct {
	ID                 string    `json:"id"`
	SupplierName       string    `json:"supplierName"`
	Variety            string    `json:"variety"`
	Origin             string    `json:"origin"`
	Quantity           float64   `json:"quantity"` // kg
	PurchasePricePerKg float64   `json:"purchasePricePerKg"`
	EntryDate          time.Time `json:"entryDate"`
	BatchNumber        string    `json:"batchNumber"` // GB-<año>-<6 dígitos>
	LowStockThreshold  float64   `json:"lowStockThreshold"`
}

// IsLowStock indica si el lote está por debajo de su umbral configurado.
func (b GreenBean) IsLowStock() bool {
	return b.Quantity < b.LowStockThreshold
}

package dto

import "time"

// CreateGreenBeanRequest alta de un lote de café verde. EntryDate y
// BatchNumber los pone el sistema.
type CreateGreenBeanRequest struct {
	SupplierName       string  `json:"supplierName"`
	Variety            string  `json:"variety"`
	Origin             string  `json:"origin"`
	Quantity           float64 `json:"quantity"`
	PurchasePricePerKg float64 `json:"purchasePricePerKg"`
	LowStockThreshold  float64 `json:"lowStockThreshold"`
}

// UpdateGreenBeanRequest patch parcial: solo los campos no nil se aplican.
type UpdateGreenBeanRequest struct {
	SupplierName       *string  `json:"supplierName"`
	Variety            *string  `json:"variety"`
	Origin             *string  `json:"origin"`
	Quantity           *float64 `json:"quantity"`
	PurchasePricePerKg *float64 `json:"purchasePricePerKg"`
	LowStockThreshold  *float64 `json:"lowStockThreshold"`
}

// GreenBeanResponse lote con su estado de stock derivado (nunca persistido).
type GreenBeanResponse struct {
	ID                 string    `json:"id"`
	SupplierName       string    `json:"supplierName"`
	Variety            string    `json:"variety"`
	Origin             string    `json:"origin"`
	Quantity           float64   `json:"quantity"`
	PurchasePricePerKg float64   `json:"purchasePricePerKg"`
	EntryDate          time.Time `json:"entryDate"`
	BatchNumber        string    `json:"batchNumber"`
	LowStockThreshold  float64   `json:"lowStockThreshold"`
	LowStock           bool      `json:"lowStock"`
}

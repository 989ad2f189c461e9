package entity

import "time"

// Sale representa una venta de café tostado.
// Las lecturas siempre se ordenan por SaleDate descendente.
type Sale struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	QuantityKg   float64   `json:"quantityKg"`
	PricePerKg   float64   `json:"pricePerKg"`
	Total        float64   `json:"total"`
	SaleDate     time.Time `json:"saleDate"`
}

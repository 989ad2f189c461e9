package dto

// CreateSaleRequest registra una venta de café tostado.
type CreateSaleRequest struct {
	CustomerName string  `json:"customerName"`
	ProductName  string  `json:"productName"`
	QuantityKg   float64 `json:"quantityKg"`
	PricePerKg   float64 `json:"pricePerKg"`
}

// Package dto define los contratos de entrada/salida de la API.
package dto

// ErrorResponse es la respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package dto

// ErrorResponse cuerpo de error HTTP. Details lleva el detalle estructurado del error
// (faltantes de stock, transición rechazada, campo inválido).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse respuesta simple.
type MessageResponse struct {
	Message string `json:"message"`
}

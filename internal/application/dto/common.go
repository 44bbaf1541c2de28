package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta de texto plano (p. ej. resultado de un upload).
type MessageResponse struct {
	Message string `json:"message"`
}

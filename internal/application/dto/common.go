package dto

// ErrorResponse cuerpo de error HTTP: code legible por máquina, detail legible por humanos.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

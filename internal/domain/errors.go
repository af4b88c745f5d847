package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores tipados más abajo envuelven estos centinelas; usar errors.Is/As.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// PartNotFoundError indica que una parte referenciada no existe en el inventario.
type PartNotFoundError struct {
	PartNumber string
}

func (e *PartNotFoundError) Error() string {
	return fmt.Sprintf("parte %s no encontrada", e.PartNumber)
}

func (e *PartNotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError indica que un consumo dejaría el stock de una parte en negativo.
// Incluye la parte ofensora y las cantidades para que el cliente pueda reportar exactamente qué faltó.
type InsufficientStockError struct {
	PartNumber string
	Requested  int64
	Available  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para la parte %s: solicitado %d, disponible %d",
		e.PartNumber, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError indica un cambio de estado no permitido en una orden de trabajo.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: de %q a %q", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = fmt.Errorf("%w: el stock cambió por otra transacción", ErrInsufficientStock)
	ErrPersistence         = errors.New("error de persistencia")
)

// ValidationError entrada mal formada (cantidad, porcentaje, token sin resolver, carrito vacío).
// No cambia ningún estado.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid atajo para construir un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError stock actual menor al solicitado en el momento del descuento.
type InsufficientStockError struct {
	ProductID string
	SKU       string
	Available int
	Requested int
	// Conflict indica que la falla vino de una transacción concurrente (deadlock / serialización).
	Conflict bool
}

func (e *InsufficientStockError) Error() string {
	if e.Conflict {
		return fmt.Sprintf("conflicto de concurrencia para %s", e.label())
	}
	return fmt.Sprintf("stock insuficiente para %s: disponible=%d, solicitado=%d", e.label(), e.Available, e.Requested)
}

func (e *InsufficientStockError) label() string {
	if e.SKU != "" {
		return e.SKU
	}
	return e.ProductID
}

func (e *InsufficientStockError) Is(target error) bool {
	if target == ErrInsufficientStock {
		return true
	}
	return e.Conflict && target == ErrConcurrencyConflict
}

// PersistenceError falla del store durante la transacción; se devuelve sin reinterpretar.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

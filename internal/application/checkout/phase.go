package checkout

import "fmt"

// Phase estado de un intento de checkout.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseReserving  Phase = "reserving"
	PhasePricing    Phase = "pricing"
	PhasePersisting Phase = "persisting"
	PhaseCommitted  Phase = "committed"
	PhaseAborted    Phase = "aborted"
)

// PhaseError falla de un checkout: la fase donde ocurrió y el error de dominio.
// errors.Is / errors.As llegan al error original (ValidationError, InsufficientStockError, ...).
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("checkout abortado en %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

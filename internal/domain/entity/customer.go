package entity

import "time"

// DefaultCustomerName nombre usado al crear un cliente nuevo sin nombre.
const DefaultCustomerName = "Customer"

// Customer cliente identificado por teléfono (clave natural).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}

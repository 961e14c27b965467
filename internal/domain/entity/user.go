package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User operador de caja o administrador. PasswordHash vacío = no puede iniciar sesión.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string // admin, staff
	CreatedAt    time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

package entity

import "time"

// Roles válidos para User. Los valores van en mayúsculas porque así
// viajan en el claim del JWT y en la columna role.
const (
	RoleClient   = "CLIENT"
	RoleApprover = "APPROVER"
	RoleAdmin    = "ADMIN"
)

// ValidRole indica si el rol es uno de los tres conocidos.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleApprover || role == RoleAdmin
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // CLIENT, APPROVER, ADMIN
	CreatedAt    time.Time
}

package repository

import "github.com/jhoicas/SecureVault-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
	// DeleteByEmail elimina TODAS las cuentas con ese email (usado por el ban).
	DeleteByEmail(email string) error
	Count() (int, error)
}

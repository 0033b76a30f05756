package repository

import "github.com/jhoicas/SecureVault-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para AuditLog.
// Solo inserción y lectura: el log es append-only por diseño.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListRecent(limit int) ([]*entity.AuditLog, error) // orden: createdAt desc
}

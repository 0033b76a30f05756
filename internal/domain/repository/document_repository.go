package repository

import "github.com/jhoicas/SecureVault-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para Document.
// GetByIDForUpdate solo tiene sentido dentro de una transacción: bloquea la
// fila del documento para serializar la asignación de número de versión.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	GetByIDForUpdate(id string) (*entity.Document, error)
	UpdateStatus(id, status string) error
	ListByClient(clientID string) ([]*entity.Document, error)
	ListByApproverEmail(email string) ([]*entity.Document, error)
	ListAll() ([]*entity.Document, error)
	Delete(id string) error
	Count() (int, error)
	CountByStatus(status string) (int, error)
}

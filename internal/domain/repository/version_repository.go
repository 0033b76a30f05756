package repository

import "github.com/jhoicas/SecureVault-api/internal/domain/entity"

// VersionRepository define el puerto de persistencia para Version.
type VersionRepository interface {
	Create(v *entity.Version) error
	MaxVersionNum(documentID string) (int, error)
	ListByDocument(documentID string) ([]*entity.Version, error) // orden: versionNum desc
	DeleteByDocument(documentID string) error
}

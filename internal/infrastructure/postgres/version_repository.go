package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

var _ repository.VersionRepository = (*VersionRepo)(nil)

// VersionRepo implementación del puerto VersionRepository sobre PostgreSQL.
type VersionRepo struct {
	q Querier
}

// NewVersionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVersionRepository(q Querier) *VersionRepo {
	return &VersionRepo{q: q}
}

// Create persiste una versión nueva.
func (r *VersionRepo) Create(v *entity.Version) error {
	query := `
		INSERT INTO versions (id, document_id, version_num, file_url, file_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.DocumentID, v.VersionNum, v.FileURL, v.FileName, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

// MaxVersionNum devuelve el número de versión más alto del documento (0 si no hay).
func (r *VersionRepo) MaxVersionNum(documentID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(version_num), 0) FROM versions WHERE document_id = $1`
	if err := r.q.QueryRow(context.Background(), query, documentID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max version num: %w", err)
	}
	return max, nil
}

// ListByDocument versiones de un documento, la más nueva primero.
func (r *VersionRepo) ListByDocument(documentID string) ([]*entity.Version, error) {
	query := `
		SELECT id, document_id, version_num, file_url, file_name, created_at
		FROM versions WHERE document_id = $1 ORDER BY version_num DESC`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Version
	for rows.Next() {
		var v entity.Version
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.VersionNum, &v.FileURL, &v.FileName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// DeleteByDocument elimina todas las versiones del documento.
func (r *VersionRepo) DeleteByDocument(documentID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM versions WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete versions: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, title, description, approver_email, category, priority, status, client_id, created_at, updated_at`

// Create persiste un documento nuevo.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Title, doc.Description, doc.ApproverEmail, doc.Category,
		doc.Priority, doc.Status, doc.ClientID, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el documento bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción: serializa la asignación de
// número de versión bajo subidas concurrentes.
func (r *DocumentRepo) GetByIDForUpdate(id string) (*entity.Document, error) {
	return r.getByID(id, true)
}

func (r *DocumentRepo) getByID(id string, forUpdate bool) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var d entity.Document
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Title, &d.Description, &d.ApproverEmail, &d.Category,
		&d.Priority, &d.Status, &d.ClientID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}
	return &d, nil
}

// UpdateStatus cambia el estado y toca updated_at.
func (r *DocumentRepo) UpdateStatus(id, status string) error {
	query := `UPDATE documents SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

// ListByClient documentos de un cliente, los más recientes primero.
func (r *DocumentRepo) ListByClient(clientID string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE client_id = $1 ORDER BY updated_at DESC`
	return r.list(query, clientID)
}

// ListByApproverEmail bandeja del revisor: documentos enrutados a su email.
func (r *DocumentRepo) ListByApproverEmail(email string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE approver_email = $1 ORDER BY updated_at DESC`
	return r.list(query, email)
}

// ListAll todos los documentos (uso administrativo).
func (r *DocumentRepo) ListAll() ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY updated_at DESC`
	return r.list(query)
}

func (r *DocumentRepo) list(query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.ApproverEmail, &d.Category,
			&d.Priority, &d.Status, &d.ClientID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina el documento. Las versiones y comentarios se borran antes
// en la misma transacción (lo orquesta el caso de uso).
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count total de documentos.
func (r *DocumentRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM documents`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// CountByStatus total de documentos en un estado.
func (r *DocumentRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM documents WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents by status: %w", err)
	}
	return n, nil
}

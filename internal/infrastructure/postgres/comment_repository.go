package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo implementación del puerto CommentRepository sobre PostgreSQL.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste un comentario de revisión.
func (r *CommentRepo) Create(c *entity.Comment) error {
	query := `
		INSERT INTO comments (id, document_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.DocumentID, c.AuthorID, c.Text, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByDocument comentarios de un documento, el más nuevo primero.
func (r *CommentRepo) ListByDocument(documentID string) ([]*entity.Comment, error) {
	query := `
		SELECT id, document_id, author_id, text, created_at
		FROM comments WHERE document_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DeleteByDocument elimina todos los comentarios del documento.
func (r *CommentRepo) DeleteByDocument(documentID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM comments WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}

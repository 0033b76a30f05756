package repository

import "github.com/jhoicas/SecureVault-api/internal/domain/entity"

// CommentRepository define el puerto de persistencia para Comment.
type CommentRepository interface {
	Create(c *entity.Comment) error
	ListByDocument(documentID string) ([]*entity.Comment, error) // orden: createdAt desc
	DeleteByDocument(documentID string) error
}

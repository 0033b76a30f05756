package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/SecureVault-api/internal/application/admin"
	"github.com/jhoicas/SecureVault-api/internal/application/review"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

// Ensure TxRunner implements review.TxRunner and admin.ModerationTxRunner.
var _ review.TxRunner = (*TxRunner)(nil)
var _ admin.ModerationTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	versionRepo repository.VersionRepository,
	commentRepo repository.CommentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentRepository(tx)
	versionRepo := NewVersionRepository(tx)
	commentRepo := NewCommentRepository(tx)

	if err := fn(docRepo, versionRepo, commentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunModeration inicia una transacción con repos de usuarios y lista de
// bloqueo (para el ban: alta del email + purga de cuentas, todo o nada).
func (r *TxRunner) RunModeration(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	bannedRepo repository.BannedEmailRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	bannedRepo := NewBannedEmailRepository(tx)

	if err := fn(userRepo, bannedRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

var _ repository.BannedEmailRepository = (*BannedEmailRepo)(nil)

// BannedEmailRepo implementación del puerto BannedEmailRepository sobre PostgreSQL.
type BannedEmailRepo struct {
	q Querier
}

// NewBannedEmailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBannedEmailRepository(q Querier) *BannedEmailRepo {
	return &BannedEmailRepo{q: q}
}

// Add agrega un email a la lista de bloqueo. Idempotente: si ya estaba, no falla.
func (r *BannedEmailRepo) Add(email string) error {
	query := `INSERT INTO banned_emails (email, created_at) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, email, time.Now())
	if err != nil {
		return fmt.Errorf("insert banned email: %w", err)
	}
	return nil
}

// Exists indica si el email está bloqueado.
func (r *BannedEmailRepo) Exists(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM banned_emails WHERE email = $1)`
	if err := r.q.QueryRow(context.Background(), query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check banned email: %w", err)
	}
	return exists, nil
}

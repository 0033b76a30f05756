package entity

import "time"

// Comment es una observación dejada por el revisor al aprobar o rechazar.
// Inmutable una vez creado; solo desaparece al borrar el documento completo.
type Comment struct {
	ID         string
	DocumentID string
	AuthorID   string
	Text       string
	CreatedAt  time.Time
}

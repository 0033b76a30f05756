package entity

import "time"

// Estados de revisión de un Document. El estado solo cambia a través del
// caso de uso de revisión: PENDING al crear o re-subir, APPROVED/REJECTED
// al revisar.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Prioridades de un Document.
const (
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ValidStatus indica si el valor es un estado de revisión conocido.
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}

// ValidPriority indica si el valor es una prioridad conocida.
func ValidPriority(priority string) bool {
	return priority == PriorityNormal || priority == PriorityHigh || priority == PriorityUrgent
}

// Document representa un documento sujeto a aprobación. ApproverEmail es
// texto libre capturado al subir: el vínculo documento→revisor es por email,
// no por foreign key a users.
type Document struct {
	ID            string
	Title         string
	Description   string
	ApproverEmail string
	Category      string
	Priority      string // NORMAL, HIGH, URGENT
	Status        string // PENDING, APPROVED, REJECTED
	ClientID      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package entity

import "time"

// Acciones auditables. Tags cortos enumerados; el detalle humano va en Details.
const (
	AuditDocumentUpload        = "DOCUMENT_UPLOAD"
	AuditDocumentVersionUpdate = "DOCUMENT_VERSION_UPDATE"
	AuditDocumentApproved      = "DOCUMENT_APPROVED"
	AuditDocumentRejected      = "DOCUMENT_REJECTED"
	AuditDocumentDeleted       = "DOCUMENT_DELETED"
	AuditUserDeleted           = "USER_DELETED"
	AuditUserBanned            = "USER_BANNED"
)

// AuditLog es el registro inmutable de una acción mutadora.
// UserID es nil cuando la acción la origina el sistema.
type AuditLog struct {
	ID        string
	Action    string
	Details   string
	UserID    *string
	IP        string
	Device    string // User-Agent del request
	CreatedAt time.Time
}

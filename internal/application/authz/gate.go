package authz

import (
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
)

// Identity es el actor autenticado. Se pasa explícitamente a cada caso de
// uso en lugar de vivir implícito en el request, para poder probar la
// autorización sin simular la capa de red.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// Action identifica una operación sujeta a autorización.
type Action string

const (
	ActionUploadDocument Action = "document.upload"
	ActionAddVersion     Action = "document.add_version"
	ActionListOwn        Action = "document.list_own"
	ActionListForReview  Action = "document.list_for_review"
	ActionReview         Action = "document.review"
	ActionGetDetails     Action = "document.get_details"
	ActionDelete         Action = "document.delete"
	ActionAdmin          Action = "admin"
)

// rule decide si la identidad puede ejecutar la acción sobre el documento
// objetivo (nil cuando la acción no tiene objetivo concreto).
type rule func(id *Identity, doc *entity.Document) bool

// rules es la tabla central de autorización: todas las reglas de rol y
// propiedad viven aquí, no repartidas por los handlers.
var rules = map[Action]rule{
	// Subir documento nuevo y listar los propios: solo CLIENT.
	ActionUploadDocument: func(id *Identity, _ *entity.Document) bool {
		return id.Role == entity.RoleClient
	},
	ActionListOwn: func(id *Identity, _ *entity.Document) bool {
		return id.Role == entity.RoleClient
	},

	// Subir nueva versión: CLIENT dueño del documento.
	ActionAddVersion: func(id *Identity, doc *entity.Document) bool {
		return id.Role == entity.RoleClient && doc != nil && doc.ClientID == id.ID
	},

	// Bandeja de revisión: APPROVER o ADMIN (el filtrado por email lo hace la query).
	ActionListForReview: func(id *Identity, _ *entity.Document) bool {
		return id.Role == entity.RoleApprover || id.Role == entity.RoleAdmin
	},

	// Revisar: ADMIN siempre; APPROVER solo si el documento está enrutado a su email.
	ActionReview: func(id *Identity, doc *entity.Document) bool {
		if id.Role == entity.RoleAdmin {
			return true
		}
		return id.Role == entity.RoleApprover && doc != nil && doc.ApproverEmail == id.Email
	},

	// Detalle: cualquier identidad autenticada; endurecer aquí si producto
	// lo pide es un cambio de una línea.
	ActionGetDetails: func(id *Identity, _ *entity.Document) bool {
		return id != nil
	},

	// Borrar: ADMIN siempre; CLIENT dueño solo si el documento no está APPROVED.
	ActionDelete: func(id *Identity, doc *entity.Document) bool {
		if id.Role == entity.RoleAdmin {
			return true
		}
		if id.Role != entity.RoleClient || doc == nil || doc.ClientID != id.ID {
			return false
		}
		return doc.Status != entity.StatusApproved
	},

	// Endpoints administrativos: solo ADMIN.
	ActionAdmin: func(id *Identity, _ *entity.Document) bool {
		return id.Role == entity.RoleAdmin
	},
}

// Decide evalúa la tabla de reglas. Devuelve nil si se permite,
// domain.ErrUnauthorized si no hay identidad y domain.ErrForbidden si la
// identidad no cumple la regla. Función pura: el llamador es responsable
// de auditar después de la mutación.
func Decide(id *Identity, action Action, doc *entity.Document) error {
	if id == nil || id.ID == "" {
		return domain.ErrUnauthorized
	}
	r, ok := rules[action]
	if !ok {
		return domain.ErrForbidden
	}
	if !r(id, doc) {
		return domain.ErrForbidden
	}
	return nil
}

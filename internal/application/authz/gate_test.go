package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/SecureVault-api/internal/application/authz"
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
)

func client(id string) *authz.Identity {
	return &authz.Identity{ID: id, Email: id + "@test.io", Role: entity.RoleClient}
}

func approver(email string) *authz.Identity {
	return &authz.Identity{ID: "appr-1", Email: email, Role: entity.RoleApprover}
}

func admin() *authz.Identity {
	return &authz.Identity{ID: "admin-1", Email: "admin@test.io", Role: entity.RoleAdmin}
}

func doc(clientID, approverEmail, status string) *entity.Document {
	return &entity.Document{ID: "doc-1", ClientID: clientID, ApproverEmail: approverEmail, Status: status}
}

// Sin identidad (nil o ID vacío) → siempre ErrUnauthorized, nunca ErrForbidden.
func TestDecide_SinIdentidad_Retorna401(t *testing.T) {
	assert.ErrorIs(t, authz.Decide(nil, authz.ActionUploadDocument, nil), domain.ErrUnauthorized)
	assert.ErrorIs(t, authz.Decide(&authz.Identity{}, authz.ActionAdmin, nil), domain.ErrUnauthorized)
}

func TestDecide_SubirDocumento_SoloClient(t *testing.T) {
	assert.NoError(t, authz.Decide(client("c1"), authz.ActionUploadDocument, nil))
	assert.ErrorIs(t, authz.Decide(approver("a@test.io"), authz.ActionUploadDocument, nil), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Decide(admin(), authz.ActionUploadDocument, nil), domain.ErrForbidden)
}

func TestDecide_NuevaVersion_SoloClientDueno(t *testing.T) {
	d := doc("c1", "a@test.io", entity.StatusPending)
	assert.NoError(t, authz.Decide(client("c1"), authz.ActionAddVersion, d))
	assert.ErrorIs(t, authz.Decide(client("otro"), authz.ActionAddVersion, d), domain.ErrForbidden)
	// Ni siquiera ADMIN sube versiones en nombre del cliente.
	assert.ErrorIs(t, authz.Decide(admin(), authz.ActionAddVersion, d), domain.ErrForbidden)
}

func TestDecide_BandejaRevision_ApproverYAdmin(t *testing.T) {
	assert.NoError(t, authz.Decide(approver("a@test.io"), authz.ActionListForReview, nil))
	assert.NoError(t, authz.Decide(admin(), authz.ActionListForReview, nil))
	assert.ErrorIs(t, authz.Decide(client("c1"), authz.ActionListForReview, nil), domain.ErrForbidden)
}

// El vínculo documento→aprobador es por email: un APPROVER solo revisa lo
// que está enrutado a su propio email.
func TestDecide_Revisar_ApproverAsignadoPorEmail(t *testing.T) {
	d := doc("c1", "a@test.io", entity.StatusPending)
	assert.NoError(t, authz.Decide(approver("a@test.io"), authz.ActionReview, d))
	assert.ErrorIs(t, authz.Decide(approver("otro@test.io"), authz.ActionReview, d), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Decide(client("c1"), authz.ActionReview, d), domain.ErrForbidden)
}

func TestDecide_Revisar_AdminSiempre(t *testing.T) {
	d := doc("c1", "a@test.io", entity.StatusApproved)
	assert.NoError(t, authz.Decide(admin(), authz.ActionReview, d))
}

func TestDecide_Borrar_ClientDuenoSoloSiNoAprobado(t *testing.T) {
	pendiente := doc("c1", "a@test.io", entity.StatusPending)
	rechazado := doc("c1", "a@test.io", entity.StatusRejected)
	aprobado := doc("c1", "a@test.io", entity.StatusApproved)

	assert.NoError(t, authz.Decide(client("c1"), authz.ActionDelete, pendiente))
	assert.NoError(t, authz.Decide(client("c1"), authz.ActionDelete, rechazado))
	// Un documento aprobado queda fuera del alcance del cliente.
	assert.ErrorIs(t, authz.Decide(client("c1"), authz.ActionDelete, aprobado), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Decide(client("otro"), authz.ActionDelete, pendiente), domain.ErrForbidden)
}

func TestDecide_Borrar_AdminInclusoAprobado(t *testing.T) {
	assert.NoError(t, authz.Decide(admin(), authz.ActionDelete, doc("c1", "a@test.io", entity.StatusApproved)))
}

func TestDecide_Admin_SoloRolAdmin(t *testing.T) {
	assert.NoError(t, authz.Decide(admin(), authz.ActionAdmin, nil))
	assert.ErrorIs(t, authz.Decide(client("c1"), authz.ActionAdmin, nil), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Decide(approver("a@test.io"), authz.ActionAdmin, nil), domain.ErrForbidden)
}

func TestDecide_Detalle_CualquierAutenticado(t *testing.T) {
	assert.NoError(t, authz.Decide(client("c1"), authz.ActionGetDetails, nil))
	assert.NoError(t, authz.Decide(approver("a@test.io"), authz.ActionGetDetails, nil))
	assert.NoError(t, authz.Decide(admin(), authz.ActionGetDetails, nil))
}

func TestDecide_AccionDesconocida_Retorna403(t *testing.T) {
	assert.ErrorIs(t, authz.Decide(admin(), authz.Action("no.existe"), nil), domain.ErrForbidden)
}

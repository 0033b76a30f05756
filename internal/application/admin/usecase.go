package admin

import (
	"context"
	"fmt"

	"github.com/jhoicas/SecureVault-api/internal/application/audit"
	"github.com/jhoicas/SecureVault-api/internal/application/authz"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

// auditPageSize entradas devueltas por el listado de auditoría.
const auditPageSize = 100

// ModerationTxRunner ejecuta el ban (alta en la lista de bloqueo + purga de
// cuentas) como una unidad atómica.
type ModerationTxRunner interface {
	RunModeration(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		bannedRepo repository.BannedEmailRepository,
	) error) error
}

// UseCase operaciones administrativas: listados, métricas y moderación.
// Toda operación exige rol ADMIN a través de la tabla de autorización.
type UseCase struct {
	tx          ModerationTxRunner
	userRepo    repository.UserRepository
	docRepo     repository.DocumentRepository
	versionRepo repository.VersionRepository
	auditRepo   repository.AuditLogRepository
	recorder    *audit.Recorder
}

// NewUseCase construye el caso de uso administrativo.
func NewUseCase(
	tx ModerationTxRunner,
	userRepo repository.UserRepository,
	docRepo repository.DocumentRepository,
	versionRepo repository.VersionRepository,
	auditRepo repository.AuditLogRepository,
	recorder *audit.Recorder,
) *UseCase {
	return &UseCase{
		tx:          tx,
		userRepo:    userRepo,
		docRepo:     docRepo,
		versionRepo: versionRepo,
		auditRepo:   auditRepo,
		recorder:    recorder,
	}
}

// ListUsers devuelve todos los usuarios activos.
func (uc *UseCase) ListUsers(id *authz.Identity) ([]*dto.UserResponse, error) {
	if err := authz.Decide(id, authz.ActionAdmin, nil); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, &dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

// ListDocuments devuelve todos los documentos (los más recientemente
// actualizados primero) con su última versión y el cliente dueño.
func (uc *UseCase) ListDocuments(id *authz.Identity) ([]*dto.DocumentResponse, error) {
	if err := authz.Decide(id, authz.ActionAdmin, nil); err != nil {
		return nil, err
	}
	docs, err := uc.docRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		resp := &dto.DocumentResponse{
			ID:            d.ID,
			Title:         d.Title,
			Description:   d.Description,
			ApproverEmail: d.ApproverEmail,
			Category:      d.Category,
			Priority:      d.Priority,
			Status:        d.Status,
			ClientID:      d.ClientID,
			CreatedAt:     d.CreatedAt,
			UpdatedAt:     d.UpdatedAt,
		}
		if versions, err := uc.versionRepo.ListByDocument(d.ID); err == nil && len(versions) > 0 {
			latest := versions[0]
			resp.Versions = []dto.VersionResponse{{
				ID:         latest.ID,
				VersionNum: latest.VersionNum,
				FileURL:    latest.FileURL,
				FileName:   latest.FileName,
				CreatedAt:  latest.CreatedAt,
			}}
		}
		if client, err := uc.userRepo.GetByID(d.ClientID); err == nil && client != nil {
			resp.Client = &dto.ClientInfo{Name: client.Name, Email: client.Email}
		}
		out = append(out, resp)
	}
	return out, nil
}

// AuditLogs devuelve las 100 entradas más recientes con el usuario resuelto
// cuando la cuenta todavía existe.
func (uc *UseCase) AuditLogs(id *authz.Identity) ([]*dto.AuditLogResponse, error) {
	if err := authz.Decide(id, authz.ActionAdmin, nil); err != nil {
		return nil, err
	}
	logs, err := uc.auditRepo.ListRecent(auditPageSize)
	if err != nil {
		return nil, err
	}
	// Cache local para no repetir lookups del mismo usuario en la página.
	seen := make(map[string]*dto.UserInfo)
	out := make([]*dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp := &dto.AuditLogResponse{
			ID:        l.ID,
			Action:    l.Action,
			Details:   l.Details,
			UserID:    l.UserID,
			IP:        l.IP,
			Device:    l.Device,
			CreatedAt: l.CreatedAt,
		}
		if l.UserID != nil {
			info, ok := seen[*l.UserID]
			if !ok {
				if u, err := uc.userRepo.GetByID(*l.UserID); err == nil && u != nil {
					info = &dto.UserInfo{Name: u.Name, Email: u.Email, Role: u.Role}
				}
				seen[*l.UserID] = info
			}
			resp.User = info
		}
		out = append(out, resp)
	}
	return out, nil
}

// Stats contadores globales: usuarios, documentos y pendientes.
func (uc *UseCase) Stats(id *authz.Identity) (*dto.StatsResponse, error) {
	if err := authz.Decide(id, authz.ActionAdmin, nil); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	docs, err := uc.docRepo.Count()
	if err != nil {
		return nil, err
	}
	pending, err := uc.docRepo.CountByStatus(entity.StatusPending)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{Users: users, Documents: docs, Pending: pending}, nil
}

// DeleteUser elimina la cuenta. Sus documentos NO se borran: siguen
// direccionables por client_id (el usuario puede volver a registrarse).
func (uc *UseCase) DeleteUser(ctx context.Context, id *authz.Identity, targetID string, meta audit.RequestMeta) error {
	if err := authz.Decide(id, authz.ActionAdmin, nil); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.Delete(targetID); err != nil {
		return err
	}
	uc.recorder.Record(entity.AuditUserDeleted, fmt.Sprintf("Usuario eliminado: %s", user.Email), meta)
	return nil
}

// BanUser agrega el email del usuario a la lista de bloqueo permanente y
// purga TODAS las cuentas con ese email, en una sola transacción. No hay
// camino de unban.
func (uc *UseCase) BanUser(ctx context.Context, id *authz.Identity, targetID string, meta audit.RequestMeta) error {
	if err := authz.Decide(id, authz.ActionAdmin, nil); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	err = uc.tx.RunModeration(ctx, func(userRepo repository.UserRepository, bannedRepo repository.BannedEmailRepository) error {
		if err := bannedRepo.Add(user.Email); err != nil {
			return err
		}
		return userRepo.DeleteByEmail(user.Email)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIntegrity, err)
	}

	uc.recorder.Record(entity.AuditUserBanned, fmt.Sprintf("Email bloqueado y cuentas purgadas: %s", user.Email), meta)
	return nil
}

package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SecureVault-api/internal/application/audit"
	"github.com/jhoicas/SecureVault-api/internal/application/authz"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
// Las mutaciones de varios pasos (versión+estado, borrado en cascada) son
// todo-o-nada a través de este puerto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		versionRepo repository.VersionRepository,
		commentRepo repository.CommentRepository,
	) error) error
}

// Notifier avisa al aprobador cuando un documento se enruta a su email.
// Best-effort: la implementación nunca devuelve error al caso de uso.
type Notifier interface {
	NotifyDocumentRouted(toEmail, title string, versionNum int)
}

// UseCase implementa la máquina de estados de revisión: PENDING al crear,
// APPROVED/REJECTED al revisar, reset incondicional a PENDING al subir una
// nueva versión, borrado en cascada al eliminar.
type UseCase struct {
	tx          TxRunner
	docRepo     repository.DocumentRepository
	versionRepo repository.VersionRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	recorder    *audit.Recorder
	notifier    Notifier
}

// NewUseCase construye el caso de uso de revisión.
func NewUseCase(
	tx TxRunner,
	docRepo repository.DocumentRepository,
	versionRepo repository.VersionRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	recorder *audit.Recorder,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		tx:          tx,
		docRepo:     docRepo,
		versionRepo: versionRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		recorder:    recorder,
		notifier:    notifier,
	}
}

// Create da de alta un documento en PENDING con su versión 1. El estado
// inicial no es elegible por el cliente: siempre PENDING.
func (uc *UseCase) Create(ctx context.Context, id *authz.Identity, in dto.UploadDocumentRequest, file dto.FileRef, meta audit.RequestMeta) (*dto.DocumentResponse, error) {
	if err := authz.Decide(id, authz.ActionUploadDocument, nil); err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	category := in.Category
	if category == "" {
		category = "GENERAL"
	}

	now := time.Now()
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Description:   in.Description,
		ApproverEmail: in.ApproverEmail,
		Category:      category,
		Priority:      priority,
		Status:        entity.StatusPending,
		ClientID:      id.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	first := &entity.Version{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		VersionNum: 1,
		FileURL:    file.URL,
		FileName:   file.Name,
		CreatedAt:  now,
	}

	err := uc.tx.Run(ctx, func(docRepo repository.DocumentRepository, versionRepo repository.VersionRepository, _ repository.CommentRepository) error {
		if err := docRepo.Create(doc); err != nil {
			return err
		}
		return versionRepo.Create(first)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(entity.AuditDocumentUpload, fmt.Sprintf("Documento subido: %s", doc.Title), meta)
	if uc.notifier != nil {
		uc.notifier.NotifyDocumentRouted(doc.ApproverEmail, doc.Title, 1)
	}

	resp := toDocumentResponse(doc)
	resp.Versions = []dto.VersionResponse{toVersionResponse(first)}
	return resp, nil
}

// AddVersion agrega una versión numerada max+1 y resetea el estado a
// PENDING sin importar el estado previo (incluso APPROVED: toda nueva
// versión fuerza re-revisión). La fila del documento se bloquea dentro de
// la transacción para serializar la asignación del número bajo subidas
// concurrentes.
func (uc *UseCase) AddVersion(ctx context.Context, id *authz.Identity, documentID string, file dto.FileRef, meta audit.RequestMeta) (*dto.DocumentResponse, error) {
	if id == nil || id.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	var doc *entity.Document
	var created *entity.Version
	err := uc.tx.Run(ctx, func(docRepo repository.DocumentRepository, versionRepo repository.VersionRepository, _ repository.CommentRepository) error {
		var err error
		doc, err = docRepo.GetByIDForUpdate(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrDocumentNotFound
		}
		if err := authz.Decide(id, authz.ActionAddVersion, doc); err != nil {
			return err
		}
		max, err := versionRepo.MaxVersionNum(documentID)
		if err != nil {
			return err
		}
		created = &entity.Version{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			VersionNum: max + 1,
			FileURL:    file.URL,
			FileName:   file.Name,
			CreatedAt:  time.Now(),
		}
		if err := versionRepo.Create(created); err != nil {
			return err
		}
		return docRepo.UpdateStatus(documentID, entity.StatusPending)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(entity.AuditDocumentVersionUpdate,
		fmt.Sprintf("Versión %d subida para: %s", created.VersionNum, doc.Title), meta)
	if uc.notifier != nil {
		uc.notifier.NotifyDocumentRouted(doc.ApproverEmail, doc.Title, created.VersionNum)
	}

	doc.Status = entity.StatusPending
	return uc.assemble(doc, true, false)
}

// Review aplica el veredicto del revisor y, si trae comentario, lo crea
// atómicamente en la misma transacción. No hay guarda de estado terminal:
// un documento ya revisado puede volver a revisarse.
func (uc *UseCase) Review(ctx context.Context, id *authz.Identity, documentID string, in dto.ReviewRequest, meta audit.RequestMeta) (*dto.DocumentResponse, error) {
	if in.Status != entity.StatusApproved && in.Status != entity.StatusRejected {
		return nil, domain.ErrInvalidInput
	}

	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	if err := authz.Decide(id, authz.ActionReview, doc); err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(docRepo repository.DocumentRepository, _ repository.VersionRepository, commentRepo repository.CommentRepository) error {
		if err := docRepo.UpdateStatus(documentID, in.Status); err != nil {
			return err
		}
		if in.Comment == "" {
			return nil
		}
		return commentRepo.Create(&entity.Comment{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			AuthorID:   id.ID,
			Text:       in.Comment,
			CreatedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	action := entity.AuditDocumentApproved
	if in.Status == entity.StatusRejected {
		action = entity.AuditDocumentRejected
	}
	uc.recorder.Record(action, fmt.Sprintf("Documento revisado: %s", documentID), meta)

	doc.Status = in.Status
	return uc.assemble(doc, false, true)
}

// Delete elimina el documento con sus versiones y comentarios en una sola
// transacción (sin filas huérfanas). La tabla de autorización bloquea el
// borrado de documentos APPROVED para clientes; ADMIN puede siempre.
func (uc *UseCase) Delete(ctx context.Context, id *authz.Identity, documentID string, meta audit.RequestMeta) error {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrDocumentNotFound
	}
	if err := authz.Decide(id, authz.ActionDelete, doc); err != nil {
		return err
	}

	err = uc.tx.Run(ctx, func(docRepo repository.DocumentRepository, versionRepo repository.VersionRepository, commentRepo repository.CommentRepository) error {
		if err := versionRepo.DeleteByDocument(documentID); err != nil {
			return err
		}
		if err := commentRepo.DeleteByDocument(documentID); err != nil {
			return err
		}
		return docRepo.Delete(documentID)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIntegrity, err)
	}

	uc.recorder.Record(entity.AuditDocumentDeleted, fmt.Sprintf("Documento eliminado: %s", doc.Title), meta)
	return nil
}

// ListForClient devuelve los documentos del cliente con sus versiones.
func (uc *UseCase) ListForClient(id *authz.Identity) ([]*dto.DocumentResponse, error) {
	if err := authz.Decide(id, authz.ActionListOwn, nil); err != nil {
		return nil, err
	}
	docs, err := uc.docRepo.ListByClient(id.ID)
	if err != nil {
		return nil, err
	}
	return uc.assembleList(docs, true, false)
}

// ListForApprover devuelve la bandeja del revisor: documentos enrutados a
// su email, con datos del cliente y versiones. Un ADMIN ve su propia
// bandeja vacía aquí; el listado global vive en el módulo admin.
func (uc *UseCase) ListForApprover(id *authz.Identity) ([]*dto.DocumentResponse, error) {
	if err := authz.Decide(id, authz.ActionListForReview, nil); err != nil {
		return nil, err
	}
	docs, err := uc.docRepo.ListByApproverEmail(id.Email)
	if err != nil {
		return nil, err
	}
	return uc.assembleListWithClient(docs, true, false)
}

// GetDetails devuelve el documento con versiones, comentarios (con autor)
// y datos del cliente. Cualquier identidad autenticada puede leerlo.
func (uc *UseCase) GetDetails(id *authz.Identity, documentID string) (*dto.DocumentResponse, error) {
	if err := authz.Decide(id, authz.ActionGetDetails, nil); err != nil {
		return nil, err
	}
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	resp, err := uc.assemble(doc, true, true)
	if err != nil {
		return nil, err
	}
	if client, err := uc.userRepo.GetByID(doc.ClientID); err == nil && client != nil {
		resp.Client = &dto.ClientInfo{Name: client.Name, Email: client.Email}
	}
	return resp, nil
}

// assemble arma la respuesta de un documento con versiones y/o comentarios.
func (uc *UseCase) assemble(doc *entity.Document, withVersions, withComments bool) (*dto.DocumentResponse, error) {
	resp := toDocumentResponse(doc)
	if withVersions {
		versions, err := uc.versionRepo.ListByDocument(doc.ID)
		if err != nil {
			return nil, err
		}
		for _, v := range versions {
			resp.Versions = append(resp.Versions, toVersionResponse(v))
		}
	}
	if withComments {
		comments, err := uc.commentRepo.ListByDocument(doc.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			cr := dto.CommentResponse{
				ID:        c.ID,
				Text:      c.Text,
				AuthorID:  c.AuthorID,
				CreatedAt: c.CreatedAt,
			}
			if author, err := uc.userRepo.GetByID(c.AuthorID); err == nil && author != nil {
				cr.AuthorName = author.Name
				cr.AuthorRole = author.Role
			}
			resp.Comments = append(resp.Comments, cr)
		}
	}
	return resp, nil
}

func (uc *UseCase) assembleList(docs []*entity.Document, withVersions, withComments bool) ([]*dto.DocumentResponse, error) {
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp, err := uc.assemble(doc, withVersions, withComments)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *UseCase) assembleListWithClient(docs []*entity.Document, withVersions, withComments bool) ([]*dto.DocumentResponse, error) {
	out, err := uc.assembleList(docs, withVersions, withComments)
	if err != nil {
		return nil, err
	}
	for i, doc := range docs {
		if client, err := uc.userRepo.GetByID(doc.ClientID); err == nil && client != nil {
			out[i].Client = &dto.ClientInfo{Name: client.Name, Email: client.Email}
		}
	}
	return out, nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
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
}

func toVersionResponse(v *entity.Version) dto.VersionResponse {
	return dto.VersionResponse{
		ID:         v.ID,
		VersionNum: v.VersionNum,
		FileURL:    v.FileURL,
		FileName:   v.FileName,
		CreatedAt:  v.CreatedAt,
	}
}

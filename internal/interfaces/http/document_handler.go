package http

import (
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SecureVault-api/internal/application/audit"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/application/review"
	"github.com/jhoicas/SecureVault-api/internal/domain"
)

// fileStore es el contrato mínimo de almacenamiento de archivos que necesita
// el handler. Lo implementa *storage.LocalStore.
type fileStore interface {
	Save(file *multipart.FileHeader) (url string, originalName string, err error)
}

// DocumentHandler maneja subida, versionado, revisión y borrado de documentos.
type DocumentHandler struct {
	uc       *review.UseCase
	store    fileStore
	validate *validator.Validate
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(uc *review.UseCase, store fileStore) *DocumentHandler {
	return &DocumentHandler{uc: uc, store: store, validate: validator.New()}
}

// requestMeta extrae los metadatos de auditoría de la petición.
func requestMeta(c *fiber.Ctx) audit.RequestMeta {
	meta := audit.RequestMeta{
		IP:     c.IP(),
		Device: c.Get("User-Agent"),
	}
	if id := GetUserID(c); id != "" {
		meta.UserID = &id
	}
	return meta
}

// documentError traduce errores de dominio a respuestas HTTP.
func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida para esta identidad"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrIntegrity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INTEGRITY", Message: "la operación no pudo completarse de forma atómica"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Upload godoc
// @Summary      Subir documento nuevo (multipart)
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file            formData  file    true   "archivo"
// @Param        title           formData  string  true   "título"
// @Param        approver_email  formData  string  true   "email del aprobador"
// @Param        description     formData  string  false  "descripción"
// @Param        priority        formData  string  false  "NORMAL | HIGH | URGENT"
// @Param        category        formData  string  false  "categoría (default GENERAL)"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo es requerido"})
	}
	url, name, err := h.store.Save(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo guardar el archivo"})
	}

	doc, err := h.uc.Create(c.Context(), identity(c), in, dto.FileRef{URL: url, Name: name}, requestMeta(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// UploadVersion godoc
// @Summary      Subir nueva versión de un documento (resetea a PENDING)
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "id del documento"
// @Param        file  formData  file    true  "archivo"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/upload/{id}/version [post]
func (h *DocumentHandler) UploadVersion(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo es requerido"})
	}
	url, name, err := h.store.Save(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo guardar el archivo"})
	}

	doc, err := h.uc.AddVersion(c.Context(), identity(c), c.Params("id"), dto.FileRef{URL: url, Name: name}, requestMeta(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// MyDocuments godoc
// @Summary      Documentos del cliente autenticado
// @Tags         documents
// @Produce      json
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/documents/my-documents [get]
func (h *DocumentHandler) MyDocuments(c *fiber.Ctx) error {
	docs, err := h.uc.ListForClient(identity(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(docs)
}

// AllForApprover godoc
// @Summary      Bandeja del aprobador: documentos enrutados a su email
// @Tags         documents
// @Produce      json
// @Success      200  {array}  dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/documents/all [get]
func (h *DocumentHandler) AllForApprover(c *fiber.Ctx) error {
	docs, err := h.uc.ListForApprover(identity(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(docs)
}

// Review godoc
// @Summary      Aprobar o rechazar un documento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id del documento"
// @Param        body  body  dto.ReviewRequest  true  "status: APPROVED | REJECTED, comment opcional"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/review/{id} [put]
func (h *DocumentHandler) Review(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser APPROVED o REJECTED"})
	}
	doc, err := h.uc.Review(c.Context(), identity(c), c.Params("id"), in, requestMeta(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// Details godoc
// @Summary      Detalle de un documento con versiones y comentarios
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "id del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Details(c *fiber.Ctx) error {
	doc, err := h.uc.GetDetails(identity(c), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// Delete godoc
// @Summary      Eliminar documento con versiones y comentarios
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "id del documento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), identity(c), c.Params("id"), requestMeta(c)); err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "documento eliminado"})
}

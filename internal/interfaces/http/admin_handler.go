package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SecureVault-api/internal/application/admin"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/domain"
)

// AdminHandler maneja listados administrativos, métricas y moderación.
type AdminHandler struct {
	uc *admin.UseCase
}

// NewAdminHandler construye el handler administrativo.
func NewAdminHandler(uc *admin.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func adminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol ADMIN"})
	case errors.Is(err, domain.ErrIntegrity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INTEGRITY", Message: "la operación no pudo completarse de forma atómica"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Users godoc
// @Summary      Listar todos los usuarios
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(identity(c))
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(users)
}

// Documents godoc
// @Summary      Listar todos los documentos con última versión y cliente
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/documents [get]
func (h *AdminHandler) Documents(c *fiber.Ctx) error {
	docs, err := h.uc.ListDocuments(identity(c))
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(docs)
}

// Logs godoc
// @Summary      Últimas 100 entradas de auditoría
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dto.AuditLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/logs [get]
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	logs, err := h.uc.AuditLogs(identity(c))
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(logs)
}

// Stats godoc
// @Summary      Contadores globales: usuarios, documentos, pendientes
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(identity(c))
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(stats)
}

// DeleteUser godoc
// @Summary      Eliminar una cuenta de usuario
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), identity(c), c.Params("id"), requestMeta(c)); err != nil {
		return adminError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// BanUser godoc
// @Summary      Bloquear el email del usuario y purgar sus cuentas
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/ban [post]
func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	if err := h.uc.BanUser(c.Context(), identity(c), c.Params("id"), requestMeta(c)); err != nil {
		return adminError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "email bloqueado y cuentas purgadas"})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SecureVault-api/internal/application/admin"
	"github.com/jhoicas/SecureVault-api/internal/application/auth"
	"github.com/jhoicas/SecureVault-api/internal/application/review"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ReviewUC      *review.UseCase
	AdminUC       *admin.UseCase
	Store         fileStore
	JWTSecret     string
	JWTExpMinutes int
	SecureCookies bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret, deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTExpMinutes, deps.SecureCookies)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authRequired, authHandler.Me)

	// Documents (protegido; la tabla de autorización decide por operación)
	documents := api.Group("/documents", authRequired)
	documentHandler := NewDocumentHandler(deps.ReviewUC, deps.Store)
	documents.Post("/upload", documentHandler.Upload)
	documents.Post("/upload/:id/version", documentHandler.UploadVersion)
	documents.Get("/my-documents", documentHandler.MyDocuments)
	documents.Get("/all", documentHandler.AllForApprover)
	documents.Put("/review/:id", documentHandler.Review)
	documents.Get("/:id", documentHandler.Details)
	documents.Delete("/:id", documentHandler.Delete)

	// Admin (protegido + solo rol ADMIN)
	adminGroup := api.Group("/admin", authRequired, RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC)
	adminGroup.Get("/users", adminHandler.Users)
	adminGroup.Get("/documents", adminHandler.Documents)
	adminGroup.Get("/logs", adminHandler.Logs)
	adminGroup.Get("/stats", adminHandler.Stats)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)
	adminGroup.Post("/users/:id/ban", adminHandler.BanUser)
}

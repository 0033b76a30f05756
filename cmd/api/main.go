package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/SecureVault-api/internal/application/admin"
	"github.com/jhoicas/SecureVault-api/internal/application/audit"
	"github.com/jhoicas/SecureVault-api/internal/application/auth"
	"github.com/jhoicas/SecureVault-api/internal/application/review"
	"github.com/jhoicas/SecureVault-api/internal/infrastructure/mailer"
	"github.com/jhoicas/SecureVault-api/internal/infrastructure/postgres"
	"github.com/jhoicas/SecureVault-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/SecureVault-api/internal/interfaces/http"
	"github.com/jhoicas/SecureVault-api/pkg/config"
	"github.com/jhoicas/SecureVault-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	versionRepo := postgres.NewVersionRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	bannedRepo := postgres.NewBannedEmailRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de subidas")
	}

	recorder := audit.NewRecorder(auditRepo, log)
	notifier := mailer.New(cfg.SMTP, log)

	authUC := auth.NewAuthUseCase(userRepo, bannedRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reviewUC := review.NewUseCase(txRunner, docRepo, versionRepo, commentRepo, userRepo, recorder, notifier)
	adminUC := admin.NewUseCase(txRunner, userRepo, docRepo, versionRepo, auditRepo, recorder)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    25 * 1024 * 1024, // subidas multipart
	})
	app.Use(recover.New())

	// La cookie de sesión exige credentials en CORS; el origen del front
	// viene de config para no abrir comodín en producción.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Secure Vault API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Archivos subidos, servidos con las URLs que guarda el storage
	app.Static("/uploads", store.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ReviewUC:      reviewUC,
		AdminUC:       adminUC,
		Store:         store,
		JWTSecret:     cfg.JWT.Secret,
		JWTExpMinutes: cfg.JWT.Expiration,
		SecureCookies: cfg.App.Env == "production",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

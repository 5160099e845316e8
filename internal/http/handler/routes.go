package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"filebox/internal/auth"
	"filebox/internal/config"
	"filebox/internal/http/middleware"
	"filebox/internal/service"
)

// RegisterRoutes mounts the API surface on the app. Everything under
// /api/file requires a valid bearer token; /api/auth and the ops endpoints
// are public.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	authSvc service.AuthService,
	fileSvc service.FileService,
	tokens *auth.TokenManager,
	uploadCfg config.UploadConfig,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Healthz())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register(authSvc))
	authGroup.Post("/login", Login(authSvc))

	fileGroup := api.Group("/file", middleware.RequireAuth(tokens))
	fileGroup.Post("/upload", UploadFile(fileSvc, uploadCfg))
	fileGroup.Get("/download/:key", DownloadFile(fileSvc))
	fileGroup.Get("/presigned/:key", PresignedDownload(fileSvc))
	fileGroup.Get("/presigned-upload", PresignedUpload(fileSvc, uploadCfg))
	fileGroup.Post("/presigned-upload-complete", CompletePresignedUpload(fileSvc))
	fileGroup.Get("/list", ListFiles(fileSvc))
	fileGroup.Get("/orphans", Orphans(fileSvc))
}

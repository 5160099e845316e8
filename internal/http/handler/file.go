package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"filebox/internal/config"
	"filebox/internal/http/middleware"
	"filebox/internal/service"
)

// CompleteUploadRequest is the body for POST /api/file/presigned-upload-complete.
// All fields are caller-asserted; the service records them without checking
// the object store.
type CompleteUploadRequest struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}

// validateUpload applies the shared size and MIME constraints for both the
// multipart upload and the presigned-upload request. Returns an empty string
// when the input is acceptable.
func validateUpload(cfg config.UploadConfig, mimetype string, size int64) string {
	if size > cfg.MaxFileSize {
		return fmt.Sprintf("File too large. Maximum size is %d bytes", cfg.MaxFileSize)
	}
	if !mimeAllowed(cfg.AllowedMimeTypes, mimetype) {
		return fmt.Sprintf("File type %s is not allowed", mimetype)
	}
	return ""
}

func mimeAllowed(allowed []string, mimetype string) bool {
	// Strip parameters such as "; charset=utf-8" before matching.
	base, _, _ := strings.Cut(mimetype, ";")
	base = strings.TrimSpace(base)
	for _, m := range allowed {
		if strings.EqualFold(m, base) {
			return true
		}
	}
	return false
}

// UploadFile accepts a multipart upload and stores it under a fresh key.
//
// @Summary      Upload a file
// @Tags         file
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "file content"
// @Success      201 {object} model.File
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/file/upload [post]
func UploadFile(svc service.FileService, cfg config.UploadConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.AuthUserID(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "Missing authentication")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file uploaded")
		}

		mimetype := fileHeader.Header.Get(fiber.HeaderContentType)
		if msg := validateUpload(cfg, mimetype, fileHeader.Size); msg != "" {
			return writeError(c, fiber.StatusBadRequest, msg)
		}

		src, err := fileHeader.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file uploaded")
		}
		defer src.Close()

		stored, err := svc.Upload(c.Context(), src, fileHeader.Filename, mimetype, fileHeader.Size, userID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to upload file")
		}

		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// DownloadFile streams the object for a key through the service. Every
// retrieval failure is reported as 404 so the handler does not reveal
// whether the key exists.
//
// @Summary      Download a file
// @Tags         file
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        key path string true "object key"
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Router       /api/file/download/{key} [get]
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		dl, err := svc.Download(c.Context(), key)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "File not found")
		}

		c.Set(fiber.HeaderContentType, dl.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", key))
		if dl.ContentLength > 0 {
			return c.SendStream(dl.Body, int(dl.ContentLength))
		}
		return c.SendStream(dl.Body)
	}
}

// PresignedDownload issues a short-lived GET URL for a key.
//
// @Summary      Presigned download URL
// @Tags         file
// @Security     BearerAuth
// @Produce      json
// @Param        key path string true "object key"
// @Success      200 {object} service.PresignedDownload
// @Failure      404 {object} ErrorResponse
// @Router       /api/file/presigned/{key} [get]
func PresignedDownload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		res, err := svc.PresignedDownload(c.Context(), key)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "File not found")
		}
		return c.JSON(res)
	}
}

// PresignedUpload validates the declared file attributes and issues a
// short-lived PUT URL bound to a fresh key.
//
// @Summary      Presigned upload URL
// @Tags         file
// @Security     BearerAuth
// @Produce      json
// @Param        filename query string true "declared file name"
// @Param        mimetype query string true "declared content type"
// @Param        size     query int    true "declared size in bytes"
// @Success      200 {object} service.PresignedUpload
// @Failure      400 {object} ErrorResponse
// @Router       /api/file/presigned-upload [get]
func PresignedUpload(svc service.FileService, cfg config.UploadConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Query("filename")
		mimetype := c.Query("mimetype")
		sizeRaw := c.Query("size")

		if filename == "" || mimetype == "" || sizeRaw == "" {
			return writeError(c, fiber.StatusBadRequest, "filename, mimetype and size are required")
		}

		size, err := strconv.ParseInt(sizeRaw, 10, 64)
		if err != nil || size < 0 {
			return writeError(c, fiber.StatusBadRequest, "size must be a non-negative integer")
		}

		if msg := validateUpload(cfg, mimetype, size); msg != "" {
			return writeError(c, fiber.StatusBadRequest, msg)
		}

		res, err := svc.PresignedUpload(c.Context(), mimetype)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to create upload URL")
		}
		return c.JSON(res)
	}
}

// CompletePresignedUpload records metadata for an upload the caller performed
// out of band against a presigned PUT URL.
//
// @Summary      Record a completed presigned upload
// @Tags         file
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CompleteUploadRequest true "uploaded object metadata"
// @Success      201 {object} model.File
// @Failure      400 {object} ErrorResponse
// @Router       /api/file/presigned-upload-complete [post]
func CompletePresignedUpload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.AuthUserID(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "Missing authentication")
		}

		var req CompleteUploadRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if req.Key == "" {
			return writeError(c, fiber.StatusBadRequest, "key is required")
		}

		stored, err := svc.CompletePresignedUpload(c.Context(), req.Key, req.Filename, req.Size, req.Mimetype, userID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to record upload")
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ListFiles returns the authenticated user's files, newest first.
//
// @Summary      List own files
// @Tags         file
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} model.File
// @Failure      401 {object} ErrorResponse
// @Router       /api/file/list [get]
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.AuthUserID(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "Missing authentication")
		}

		files, err := svc.List(c.Context(), userID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to list files")
		}
		return c.JSON(files)
	}
}

// Orphans reports bucket objects that have no metadata record, typically
// presigned uploads that were never completed.
//
// @Summary      List unrecorded bucket objects
// @Tags         file
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} storage.ObjectInfo
// @Failure      401 {object} ErrorResponse
// @Router       /api/file/orphans [get]
func Orphans(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		objects, err := svc.Orphans(c.Context())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to list orphans")
		}
		return c.JSON(objects)
	}
}

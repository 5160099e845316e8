package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"filebox/internal/http/middleware"
)

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	RequestID  string `json:"request_id,omitempty"`
}

// writeError renders the uniform error envelope. The error field is derived
// from the status code (e.g. 404 -> "Not Found").
func writeError(c *fiber.Ctx, status int, message string) error {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)

	return c.Status(status).JSON(ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Path(),
		RequestID:  rid,
	})
}

// ErrorHandler is the app-wide Fiber error handler. Handlers mostly call
// writeError directly; this catches errors returned up the chain, such as
// middleware rejections and panics recovered by Fiber, and renders them in
// the same envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}

		return writeError(c, status, message)
	}
}

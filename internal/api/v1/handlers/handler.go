package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskdeck/internal/apperr"
	"taskdeck/internal/events"
	"taskdeck/internal/service"
	"taskdeck/pkg/logger"
)

var validate = validator.New()

// Handler carries the services the routes dispatch into. The hub is
// optional; without one task events are simply not published.
type Handler struct {
	Auth       *service.AuthService
	Categories *service.CategoryService
	Tasks      *service.TaskService
	Subtasks   *service.SubtaskService
	Hub        *events.Hub

	RefreshCookieName string
	CookieDomain      string
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.InvalidArgument:
		return fiber.StatusBadRequest
	case apperr.Unauthenticated:
		return fiber.StatusUnauthorized
	case apperr.Forbidden:
		return fiber.StatusForbidden
	case apperr.NotFound:
		return fiber.StatusNotFound
	case apperr.Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail renders a service error. Internal causes are logged but never leak
// into the response body.
func fail(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	message := err.Error()

	switch apperr.KindOf(err) {
	case apperr.Forbidden, apperr.Unauthenticated:
		logger.SecurityLogger.Warn("Request denied",
			zap.String("url", c.OriginalURL()), zap.Error(err))
	case apperr.Internal:
		logger.ErrorLogger.Error("Request failed",
			zap.String("url", c.OriginalURL()), zap.Error(err))
		message = "Internal server error"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  status,
	})
}

func ok(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"message": message,
		"success": true,
		"status":  status,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusBadRequest,
	})
}

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Newf(apperr.InvalidArgument, "the %s parameter is not a valid id", name)
	}
	return id, nil
}

func (h *Handler) publish(evt events.Event) {
	if h.Hub != nil {
		h.Hub.Publish(evt)
	}
}

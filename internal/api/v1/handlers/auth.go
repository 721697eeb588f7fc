package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskdeck/internal/apperr"
	"taskdeck/internal/middleware"
	"taskdeck/internal/service"
	"taskdeck/pkg/logger"
)

// Auth handlers. The access token travels in the response body, the
// refresh token in an httpOnly cookie (and the body, for non-browser
// clients that manage it themselves).

func (h *Handler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return badRequest(c, "Validation error: "+err.Error())
	}

	result, err := h.Auth.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if apperr.IsConflict(err) {
			logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", req.Email))
		}
		return fail(c, err)
	}

	h.setRefreshCookie(c, result)
	logger.AuditLogger.Info("User registered", zap.Int("user_id", result.User.ID))
	return ok(c, fiber.StatusCreated, "User created successfully", authPayload(result))
}

func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return badRequest(c, "Validation error: "+err.Error())
	}

	result, err := h.Auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password are logged apart; only the
		// status differs for the caller.
		if apperr.IsNotFound(err) {
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", req.Email))
		} else if apperr.IsUnauthenticated(err) {
			logger.SecurityLogger.Warn("Login with wrong password", zap.String("email", req.Email))
		}
		return fail(c, err)
	}

	h.setRefreshCookie(c, result)
	logger.AuditLogger.Info("Login success", zap.Int("user_id", result.User.ID))
	return ok(c, fiber.StatusOK, "Login success", authPayload(result))
}

// Refresh rotates the token pair using the refresh cookie, falling back to
// a body field for clients that do not hold cookies.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(h.RefreshCookieName)
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return fail(c, apperr.New(apperr.Unauthenticated, "no refresh token provided"))
	}

	result, err := h.Auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		logger.SecurityLogger.Warn("Refresh rejected", zap.Error(err))
		return fail(c, err)
	}

	h.setRefreshCookie(c, result)
	logger.AuditLogger.Info("Tokens rotated", zap.Int("user_id", result.User.ID))
	return ok(c, fiber.StatusOK, "Tokens refreshed", authPayload(result))
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.RefreshCookieName,
		Value:    "",
		Domain:   h.CookieDomain,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	return ok(c, fiber.StatusOK, "Logged out", nil)
}

// Me returns the acting user's own profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.Auth.Me(c.Context(), middleware.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "User found", user)
}

func (h *Handler) setRefreshCookie(c *fiber.Ctx, result service.AuthResult) {
	c.Cookie(&fiber.Cookie{
		Name:     h.RefreshCookieName,
		Value:    result.Tokens.RefreshToken,
		Domain:   h.CookieDomain,
		Expires:  result.Tokens.RefreshExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func authPayload(result service.AuthResult) fiber.Map {
	return fiber.Map{
		"user":         result.User,
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
	}
}

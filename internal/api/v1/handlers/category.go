package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskdeck/internal/middleware"
	"taskdeck/internal/models"
	"taskdeck/pkg/logger"
)

// Category handlers.

func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	type CategoryRequest struct {
		Title string `json:"title" validate:"required"`
		Color string `json:"color" validate:"required"`
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create category", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Validation error: "+err.Error())
	}

	category, err := h.Categories.Create(c.Context(), middleware.ActorID(c), req.Title, models.Color(req.Color))
	if err != nil {
		return fail(c, err)
	}

	logger.AuditLogger.Info("Category created", zap.Int("category_id", category.ID))
	return ok(c, fiber.StatusCreated, "Category created successfully", category)
}

func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	category, err := h.Categories.GetByID(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Category found", category)
}

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.Categories.ListByUser(c.Context(), middleware.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Categories fetched successfully", categories)
}

func (h *Handler) ListFavoriteCategories(c *fiber.Ctx) error {
	categories, err := h.Categories.ListFavorites(c.Context(), middleware.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Favorite categories fetched successfully", categories)
}

func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	type UpdateCategoryRequest struct {
		Title string `json:"title" validate:"required"`
		Color string `json:"color" validate:"required"`
	}
	var req UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update category", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Validation error: "+err.Error())
	}

	category, err := h.Categories.Update(c.Context(), middleware.ActorID(c), id, req.Title, models.Color(req.Color))
	if err != nil {
		return fail(c, err)
	}

	logger.AuditLogger.Info("Category updated", zap.Int("category_id", id))
	return ok(c, fiber.StatusOK, "Category updated successfully", category)
}

func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Categories.Delete(c.Context(), middleware.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	logger.AuditLogger.Info("Category deleted", zap.Int("category_id", id))
	return ok(c, fiber.StatusOK, "Category deleted successfully", nil)
}

func (h *Handler) FavoriteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	category, err := h.Categories.Favorite(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Category added to favorites", category)
}

func (h *Handler) UnfavoriteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	category, err := h.Categories.Unfavorite(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Category removed from favorites", category)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskdeck/internal/middleware"
	"taskdeck/pkg/logger"
)

// Subtask handlers. Standing is inherited from the parent task inside the
// service; nothing here looks at ownership.

func (h *Handler) CreateSubtask(c *fiber.Ctx) error {
	type SubtaskRequest struct {
		Title  string `json:"title" validate:"required"`
		TaskID int    `json:"task_id" validate:"required"`
	}

	var req SubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create subtask", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Validation error: "+err.Error())
	}

	subtask, err := h.Subtasks.Create(c.Context(), middleware.ActorID(c), req.TaskID, req.Title)
	if err != nil {
		return fail(c, err)
	}

	logger.AuditLogger.Info("Subtask created", zap.Int("subtask_id", subtask.ID))
	return ok(c, fiber.StatusCreated, "Subtask created successfully", subtask)
}

func (h *Handler) ListSubtasksByTask(c *fiber.Ctx) error {
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return fail(c, err)
	}
	subtasks, err := h.Subtasks.ListByTask(c.Context(), middleware.ActorID(c), taskID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Subtasks fetched successfully", subtasks)
}

func (h *Handler) UpdateSubtask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	type UpdateSubtaskRequest struct {
		Title string `json:"title" validate:"required"`
	}
	var req UpdateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update subtask", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Validation error: "+err.Error())
	}

	subtask, err := h.Subtasks.Update(c.Context(), middleware.ActorID(c), id, req.Title)
	if err != nil {
		return fail(c, err)
	}

	logger.AuditLogger.Info("Subtask updated", zap.Int("subtask_id", id))
	return ok(c, fiber.StatusOK, "Subtask updated successfully", subtask)
}

func (h *Handler) DeleteSubtask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Subtasks.Delete(c.Context(), middleware.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	logger.AuditLogger.Info("Subtask deleted", zap.Int("subtask_id", id))
	return ok(c, fiber.StatusOK, "Subtask deleted successfully", nil)
}

func (h *Handler) CompleteSubtask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	subtask, err := h.Subtasks.MarkDone(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	logger.AuditLogger.Info("Subtask completed", zap.Int("subtask_id", id))
	return ok(c, fiber.StatusOK, "Subtask was completed", subtask)
}

func (h *Handler) ReopenSubtask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	subtask, err := h.Subtasks.MarkUndone(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	logger.AuditLogger.Info("Subtask reopened", zap.Int("subtask_id", id))
	return ok(c, fiber.StatusOK, "Subtask was reopened", subtask)
}

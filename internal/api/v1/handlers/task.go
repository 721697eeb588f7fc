package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskdeck/internal/events"
	"taskdeck/internal/middleware"
	"taskdeck/internal/models"
	"taskdeck/pkg/logger"
)

// Task handlers.

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	type TaskRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Priority    string `json:"priority" validate:"required,oneof=low medium high"`
		CategoryID  int    `json:"category_id" validate:"required"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Validation error: "+err.Error())
	}

	task, err := h.Tasks.Create(c.Context(), middleware.ActorID(c), req.CategoryID, req.Title, req.Description, models.Priority(req.Priority))
	if err != nil {
		return fail(c, err)
	}

	h.publish(events.Event{Type: events.TaskCreated, TaskID: task.ID, Title: task.Title})
	logger.AuditLogger.Info("Task created", zap.Int("task_id", task.ID))
	return ok(c, fiber.StatusCreated, "Task created successfully", task)
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	task, err := h.Tasks.GetByID(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Task found", task)
}

func (h *Handler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.Tasks.ListByUser(c.Context(), middleware.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *Handler) ListTasksByCategory(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return fail(c, err)
	}
	tasks, err := h.Tasks.ListByCategory(c.Context(), middleware.ActorID(c), categoryID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *Handler) ListDoneTasksByCategory(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return fail(c, err)
	}
	tasks, err := h.Tasks.ListDoneByCategory(c.Context(), middleware.ActorID(c), categoryID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Done tasks fetched successfully", tasks)
}

func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	type UpdateTaskRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Priority    string `json:"priority" validate:"required,oneof=low medium high"`
	}
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Validation error: "+err.Error())
	}

	task, err := h.Tasks.Update(c.Context(), middleware.ActorID(c), id, req.Title, req.Description, models.Priority(req.Priority))
	if err != nil {
		return fail(c, err)
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", id))
	return ok(c, fiber.StatusOK, "Task updated successfully", task)
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Tasks.Delete(c.Context(), middleware.ActorID(c), id); err != nil {
		return fail(c, err)
	}

	h.publish(events.Event{Type: events.TaskDeleted, TaskID: id})
	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", id))
	return ok(c, fiber.StatusOK, "Task deleted successfully", nil)
}

func (h *Handler) CompleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	task, err := h.Tasks.MarkDone(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}

	h.publish(events.Event{Type: events.TaskCompleted, TaskID: task.ID, Title: task.Title})
	logger.AuditLogger.Info("Task completed", zap.Int("task_id", id))
	return ok(c, fiber.StatusOK, "Task was completed", task)
}

func (h *Handler) ReopenTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	task, err := h.Tasks.MarkUndone(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}

	h.publish(events.Event{Type: events.TaskReopened, TaskID: task.ID, Title: task.Title})
	logger.AuditLogger.Info("Task reopened", zap.Int("task_id", id))
	return ok(c, fiber.StatusOK, "Task was reopened", task)
}

package service

import (
	"context"

	"taskdeck/internal/apperr"
	"taskdeck/internal/authz"
	"taskdeck/internal/models"
)

type TaskService struct {
	tasks      TaskStore
	categories CategoryStore
	users      UserStore
	authz      *authz.Engine
}

func NewTaskService(tasks TaskStore, categories CategoryStore, users UserStore, engine *authz.Engine) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, users: users, authz: engine}
}

// Create authorizes against the category the task will live in (there is
// no task to check yet), then writes the task with its structural and
// ownership edges as one atomic group.
func (s *TaskService) Create(ctx context.Context, actorID, categoryID int, title, description string, priority models.Priority) (models.Task, error) {
	if title == "" {
		return models.Task{}, apperr.New(apperr.InvalidArgument, "the task title must not be empty")
	}
	if !priority.Valid() {
		return models.Task{}, apperr.Newf(apperr.InvalidArgument, "unknown task priority %q", priority)
	}
	if err := checkID("category", categoryID); err != nil {
		return models.Task{}, err
	}
	if _, err := s.categories.CategoryByID(ctx, categoryID); err != nil {
		return models.Task{}, err
	}
	if err := s.authz.Authorize(ctx, actorID, authz.KindCategory, categoryID); err != nil {
		return models.Task{}, err
	}
	return s.tasks.CreateTaskInCategory(ctx, actorID, categoryID, title, description, priority)
}

func (s *TaskService) GetByID(ctx context.Context, actorID, taskID int) (models.Task, error) {
	if err := checkID("task", taskID); err != nil {
		return models.Task{}, err
	}
	task, err := s.tasks.TaskByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.authz.Authorize(ctx, actorID, authz.KindTask, taskID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) ListByUser(ctx context.Context, actorID int) ([]models.Task, error) {
	if _, err := s.users.UserByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.tasks.TasksByUser(ctx, actorID)
}

func (s *TaskService) ListByCategory(ctx context.Context, actorID, categoryID int) ([]models.Task, error) {
	if err := s.guardCategory(ctx, actorID, categoryID); err != nil {
		return nil, err
	}
	return s.tasks.TasksByCategory(ctx, categoryID)
}

func (s *TaskService) ListDoneByCategory(ctx context.Context, actorID, categoryID int) ([]models.Task, error) {
	if err := s.guardCategory(ctx, actorID, categoryID); err != nil {
		return nil, err
	}
	return s.tasks.DoneTasksByCategory(ctx, categoryID)
}

func (s *TaskService) Update(ctx context.Context, actorID, taskID int, title, description string, priority models.Priority) (models.Task, error) {
	if title == "" {
		return models.Task{}, apperr.New(apperr.InvalidArgument, "the task title must not be empty")
	}
	if !priority.Valid() {
		return models.Task{}, apperr.Newf(apperr.InvalidArgument, "unknown task priority %q", priority)
	}
	if err := s.guard(ctx, actorID, taskID); err != nil {
		return models.Task{}, err
	}
	return s.tasks.UpdateTask(ctx, taskID, title, description, priority)
}

func (s *TaskService) Delete(ctx context.Context, actorID, taskID int) error {
	if err := s.guard(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.tasks.DeleteTask(ctx, taskID)
}

func (s *TaskService) MarkDone(ctx context.Context, actorID, taskID int) (models.Task, error) {
	return s.setDone(ctx, actorID, taskID, true)
}

func (s *TaskService) MarkUndone(ctx context.Context, actorID, taskID int) (models.Task, error) {
	return s.setDone(ctx, actorID, taskID, false)
}

func (s *TaskService) setDone(ctx context.Context, actorID, taskID int, done bool) (models.Task, error) {
	if err := s.guard(ctx, actorID, taskID); err != nil {
		return models.Task{}, err
	}
	return s.tasks.SetTaskDone(ctx, taskID, done)
}

func (s *TaskService) guard(ctx context.Context, actorID, taskID int) error {
	if err := checkID("task", taskID); err != nil {
		return err
	}
	if _, err := s.tasks.TaskByID(ctx, taskID); err != nil {
		return err
	}
	return s.authz.Authorize(ctx, actorID, authz.KindTask, taskID)
}

func (s *TaskService) guardCategory(ctx context.Context, actorID, categoryID int) error {
	if err := checkID("category", categoryID); err != nil {
		return err
	}
	if _, err := s.categories.CategoryByID(ctx, categoryID); err != nil {
		return err
	}
	return s.authz.Authorize(ctx, actorID, authz.KindCategory, categoryID)
}

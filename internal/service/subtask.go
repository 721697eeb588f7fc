package service

import (
	"context"

	"taskdeck/internal/apperr"
	"taskdeck/internal/authz"
	"taskdeck/internal/models"
)

// SubtaskService never consults a subtask edge table; there is none.
// Standing over a subtask is the parent task's standing, resolved at every
// call through the authorization engine.
type SubtaskService struct {
	subtasks SubtaskStore
	tasks    TaskStore
	authz    *authz.Engine
}

func NewSubtaskService(subtasks SubtaskStore, tasks TaskStore, engine *authz.Engine) *SubtaskService {
	return &SubtaskService{subtasks: subtasks, tasks: tasks, authz: engine}
}

// Create requires standing on the parent task.
func (s *SubtaskService) Create(ctx context.Context, actorID, taskID int, title string) (models.Subtask, error) {
	if title == "" {
		return models.Subtask{}, apperr.New(apperr.InvalidArgument, "the subtask title must not be empty")
	}
	if err := checkID("task", taskID); err != nil {
		return models.Subtask{}, err
	}
	if _, err := s.tasks.TaskByID(ctx, taskID); err != nil {
		return models.Subtask{}, err
	}
	if err := s.authz.Authorize(ctx, actorID, authz.KindTask, taskID); err != nil {
		return models.Subtask{}, err
	}
	return s.subtasks.CreateSubtask(ctx, taskID, title)
}

func (s *SubtaskService) ListByTask(ctx context.Context, actorID, taskID int) ([]models.Subtask, error) {
	if err := checkID("task", taskID); err != nil {
		return nil, err
	}
	if _, err := s.tasks.TaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, actorID, authz.KindTask, taskID); err != nil {
		return nil, err
	}
	return s.subtasks.SubtasksByTask(ctx, taskID)
}

func (s *SubtaskService) Update(ctx context.Context, actorID, subtaskID int, title string) (models.Subtask, error) {
	if title == "" {
		return models.Subtask{}, apperr.New(apperr.InvalidArgument, "the subtask title must not be empty")
	}
	if err := s.guard(ctx, actorID, subtaskID); err != nil {
		return models.Subtask{}, err
	}
	return s.subtasks.UpdateSubtask(ctx, subtaskID, title)
}

func (s *SubtaskService) Delete(ctx context.Context, actorID, subtaskID int) error {
	if err := s.guard(ctx, actorID, subtaskID); err != nil {
		return err
	}
	return s.subtasks.DeleteSubtask(ctx, subtaskID)
}

func (s *SubtaskService) MarkDone(ctx context.Context, actorID, subtaskID int) (models.Subtask, error) {
	return s.setDone(ctx, actorID, subtaskID, true)
}

func (s *SubtaskService) MarkUndone(ctx context.Context, actorID, subtaskID int) (models.Subtask, error) {
	return s.setDone(ctx, actorID, subtaskID, false)
}

func (s *SubtaskService) setDone(ctx context.Context, actorID, subtaskID int, done bool) (models.Subtask, error) {
	if err := s.guard(ctx, actorID, subtaskID); err != nil {
		return models.Subtask{}, err
	}
	return s.subtasks.SetSubtaskDone(ctx, subtaskID, done)
}

func (s *SubtaskService) guard(ctx context.Context, actorID, subtaskID int) error {
	if err := checkID("subtask", subtaskID); err != nil {
		return err
	}
	if _, err := s.subtasks.SubtaskByID(ctx, subtaskID); err != nil {
		return err
	}
	return s.authz.Authorize(ctx, actorID, authz.KindSubtask, subtaskID)
}

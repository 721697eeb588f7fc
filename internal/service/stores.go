// Package service holds the domain services. Every mutating or list-scoped
// operation runs the same protocol: validate the id, load the target
// (NotFound before anything else), consult the authorization engine
// (Forbidden), then perform the change.
package service

import (
	"context"

	"taskdeck/internal/models"
)

// The store interfaces below are the persistence surface the services
// consume. Both the postgres repository and the in-memory store satisfy
// them. Creation methods that write an entity together with its edges are
// atomic in the implementation; the services rely on that.

type UserStore interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error)
	UserByID(ctx context.Context, id int) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type CategoryStore interface {
	CreateCategoryOwnedBy(ctx context.Context, userID int, title string, color models.Color) (models.Category, error)
	CategoryByID(ctx context.Context, id int) (models.Category, error)
	CategoriesByUser(ctx context.Context, userID int) ([]models.Category, error)
	FavoriteCategoriesByUser(ctx context.Context, userID int) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int, title string, color models.Color) (models.Category, error)
	SetCategoryFavorite(ctx context.Context, id int, favorite bool) (models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type TaskStore interface {
	CreateTaskInCategory(ctx context.Context, userID, categoryID int, title, description string, priority models.Priority) (models.Task, error)
	TaskByID(ctx context.Context, id int) (models.Task, error)
	TasksByUser(ctx context.Context, userID int) ([]models.Task, error)
	TasksByCategory(ctx context.Context, categoryID int) ([]models.Task, error)
	DoneTasksByCategory(ctx context.Context, categoryID int) ([]models.Task, error)
	UpdateTask(ctx context.Context, id int, title, description string, priority models.Priority) (models.Task, error)
	SetTaskDone(ctx context.Context, id int, done bool) (models.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

type SubtaskStore interface {
	CreateSubtask(ctx context.Context, taskID int, title string) (models.Subtask, error)
	SubtaskByID(ctx context.Context, id int) (models.Subtask, error)
	SubtasksByTask(ctx context.Context, taskID int) ([]models.Subtask, error)
	UpdateSubtask(ctx context.Context, id int, title string) (models.Subtask, error)
	SetSubtaskDone(ctx context.Context, id int, done bool) (models.Subtask, error)
	DeleteSubtask(ctx context.Context, id int) error
}

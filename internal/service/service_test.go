package service_test

import (
	"context"

	"taskdeck/internal/authz"
	"taskdeck/internal/models"
	"taskdeck/internal/repository/memory"
	"taskdeck/internal/service"
	"taskdeck/internal/token"
)

// env wires the full service stack over the in-memory store, the same way
// cmd/api does over postgres.
type env struct {
	store      *memory.Store
	tokens     *token.Manager
	auth       *service.AuthService
	categories *service.CategoryService
	tasks      *service.TaskService
	subtasks   *service.SubtaskService
}

func newEnv() *env {
	store := memory.NewStore()
	tokens := token.NewManager([]byte("test-secret"))
	engine := authz.NewEngine(store)
	return &env{
		store:      store,
		tokens:     tokens,
		auth:       service.NewAuthService(store, tokens),
		categories: service.NewCategoryService(store, store, engine),
		tasks:      service.NewTaskService(store, store, store, engine),
		subtasks:   service.NewSubtaskService(store, store, engine),
	}
}

func (e *env) registerUser(email string) models.User {
	result, err := e.auth.Register(context.Background(), email, "password1", "Test User")
	if err != nil {
		panic(err)
	}
	return result.User
}

func (e *env) createCategory(userID int, title string) models.Category {
	category, err := e.categories.Create(context.Background(), userID, title, models.ColorBlue)
	if err != nil {
		panic(err)
	}
	return category
}

func (e *env) createTask(userID, categoryID int, title string) models.Task {
	task, err := e.tasks.Create(context.Background(), userID, categoryID, title, "", models.PriorityMedium)
	if err != nil {
		panic(err)
	}
	return task
}

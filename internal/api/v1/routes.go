package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskdeck/internal/api/v1/handlers"
	"taskdeck/internal/middleware"
	"taskdeck/internal/token"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handler, tokens *token.Manager) {
	api := app.Group("/api/v1")
	auth := middleware.RequireAuth(tokens)

	// Auth
	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/refresh", h.Refresh)
	api.Post("/auth/logout", h.Logout)

	// User
	api.Get("/users/me", auth, h.Me)

	// Category
	categoryRoutes := api.Group("/categories", auth)
	categoryRoutes.Post("/", h.CreateCategory)
	categoryRoutes.Get("/by-id/:id", h.GetCategory)
	categoryRoutes.Get("/by-user", h.ListCategories)
	categoryRoutes.Get("/favorite", h.ListFavoriteCategories)
	categoryRoutes.Put("/:id", h.UpdateCategory)
	categoryRoutes.Delete("/:id", h.DeleteCategory)
	categoryRoutes.Patch("/favorite/:id", h.FavoriteCategory)
	categoryRoutes.Patch("/unfavorite/:id", h.UnfavoriteCategory)

	// Task
	taskRoutes := api.Group("/tasks", auth)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Get("/by-id/:id", h.GetTask)
	taskRoutes.Get("/by-user", h.ListTasks)
	taskRoutes.Get("/by-category/:categoryId", h.ListTasksByCategory)
	taskRoutes.Get("/done/:categoryId", h.ListDoneTasksByCategory)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)
	taskRoutes.Patch("/complete/:id", h.CompleteTask)
	taskRoutes.Patch("/incomplete/:id", h.ReopenTask)

	// Subtask
	subtaskRoutes := api.Group("/subtasks", auth)
	subtaskRoutes.Post("/", h.CreateSubtask)
	subtaskRoutes.Get("/by-task/:taskId", h.ListSubtasksByTask)
	subtaskRoutes.Put("/:id", h.UpdateSubtask)
	subtaskRoutes.Delete("/:id", h.DeleteSubtask)
	subtaskRoutes.Patch("/complete/:id", h.CompleteSubtask)
	subtaskRoutes.Patch("/incomplete/:id", h.ReopenSubtask)

	// Task event stream
	if h.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
			client := h.Hub.Register(conn)
			defer h.Hub.Unregister(client)
			for {
				// Clients only listen; reads just detect disconnects.
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}
}

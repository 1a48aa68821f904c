package router

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/handlers"
	auth_handlers "github.com/sahilchouksey/task-tracker/handlers/auth"
	todo_handlers "github.com/sahilchouksey/task-tracker/handlers/todo"
	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils"
	"github.com/sahilchouksey/task-tracker/utils/validation"
)

func SetupRoutes(app *fiber.App, manager *services.TaskManager, store database.Storage) {
	// One lock for every handler: the manager holds the session and is
	// not safe for concurrent use.
	var mu sync.Mutex
	validator := validation.NewValidator()

	authHandler := auth_handlers.NewAuthHandler(manager, &mu, validator)
	todoHandler := todo_handlers.NewTodoHandler(manager, &mu, validator)

	// Health check endpoint (public)
	app.Get("/health", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.GetSession)

	// Task routes; :index is the position in the unfiltered listing
	tasks := app.Group("/tasks")
	tasks.Get("/", todoHandler.GetAllTodos)
	tasks.Post("/", todoHandler.AddTodo)
	tasks.Patch("/:index", todoHandler.UpdateTodo)
	tasks.Post("/:index/complete", todoHandler.CompleteTodo)
	tasks.Delete("/:index", todoHandler.DeleteTodo)
}

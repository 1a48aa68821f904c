package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils/response"
	"github.com/sahilchouksey/task-tracker/utils/validation"
)

// TaskRequest is the body of create and update calls. Empty fields are
// ignored on update.
type TaskRequest struct {
	Title       string `json:"title" validate:"omitempty"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,duedate"`
}

// createTaskRequest adds the create-only rule that a title is present.
type createTaskRequest struct {
	Title   string `validate:"required"`
	DueDate string `validate:"omitempty,duedate"`
}

// TaskResponse is a task as returned over HTTP.
type TaskResponse struct {
	Index        int       `json:"index"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	DueDate      time.Time `json:"due_date"`
	Completed    bool      `json:"completed"`
	Overdue      bool      `json:"overdue"`
	DaysUntilDue int       `json:"days_until_due"`
}

func toTaskResponse(index int, task model.Task, now time.Time) TaskResponse {
	return TaskResponse{
		Index:        index,
		Title:        task.Title,
		Description:  task.Description,
		CreatedAt:    task.CreatedAt,
		DueDate:      task.DueDate,
		Completed:    task.Completed,
		Overdue:      task.IsOverdueAt(now),
		DaysUntilDue: task.DaysUntilDueAt(now),
	}
}

// TodoHandler exposes the task operations of a TaskManager.
type TodoHandler struct {
	manager   *services.TaskManager
	mu        *sync.Mutex
	validator *validation.Validator
}

// NewTodoHandler creates a handler. mu must be shared with every other
// handler using the same manager; the manager itself is not safe for
// concurrent use.
func NewTodoHandler(manager *services.TaskManager, mu *sync.Mutex, validator *validation.Validator) *TodoHandler {
	return &TodoHandler{manager: manager, mu: mu, validator: validator}
}

// GetAllTodos lists tasks, optionally filtered with ?status=pending|completed|overdue.
func (h *TodoHandler) GetAllTodos(c *fiber.Ctx) error {
	status := services.ParseStatusFilter(c.Query("status", string(services.StatusAll)))

	h.mu.Lock()
	tasks, err := h.manager.ListTasks(status)
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to load tasks")
	}

	now := time.Now()
	out := make([]TaskResponse, 0, len(tasks))
	for _, it := range tasks {
		out = append(out, toTaskResponse(it.Index, it.Task, now))
	}
	return response.Success(c, out)
}

// AddTodo creates a task
func (h *TodoHandler) AddTodo(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(createTaskRequest{Title: req.Title, DueDate: req.DueDate}); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}
	due, err := validation.ParseOptionalDueDate(req.DueDate)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	h.mu.Lock()
	task, err := h.manager.AddTask(req.Title, req.Description, due)
	var count int
	if err == nil {
		var all []model.Task
		all, err = h.manager.GetAllTasks()
		count = len(all)
	}
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to add task")
	}

	return response.Created(c, toTaskResponse(count-1, task, time.Now()))
}

// UpdateTodo overwrites the non-empty fields of the task at :index
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return response.BadRequest(c, "Task index must be an integer")
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}
	due, err := validation.ParseOptionalDueDate(req.DueDate)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	h.mu.Lock()
	ok, err := h.manager.UpdateTask(index, req.Title, req.Description, due)
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to update task")
	}
	if !ok {
		return response.NotFound(c, "Task not found")
	}
	return h.respondWithTask(c, index, "Task updated")
}

// CompleteTodo marks the task at :index as completed
func (h *TodoHandler) CompleteTodo(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return response.BadRequest(c, "Task index must be an integer")
	}

	h.mu.Lock()
	ok, err := h.manager.CompleteTask(index)
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to complete task")
	}
	if !ok {
		return response.NotFound(c, "Task not found")
	}
	return h.respondWithTask(c, index, "Task marked as completed")
}

// DeleteTodo removes the task at :index; later tasks shift down by one
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return response.BadRequest(c, "Task index must be an integer")
	}

	h.mu.Lock()
	ok, err := h.manager.DeleteTask(index)
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to delete task")
	}
	if !ok {
		return response.NotFound(c, "Task not found")
	}
	return response.SuccessWithMessage(c, "Task deleted", fiber.Map{"index": index})
}

func (h *TodoHandler) respondWithTask(c *fiber.Ctx, index int, message string) error {
	h.mu.Lock()
	tasks, err := h.manager.GetAllTasks()
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to load task")
	}
	if index >= len(tasks) {
		return response.NotFound(c, "Task not found")
	}
	return response.SuccessWithMessage(c, message, toTaskResponse(index, tasks[index], time.Now()))
}

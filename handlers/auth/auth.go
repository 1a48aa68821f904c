package auth

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils/response"
	"github.com/sahilchouksey/task-tracker/utils/validation"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	manager   *services.TaskManager
	mu        *sync.Mutex
	validator *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(manager *services.TaskManager, mu *sync.Mutex, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		manager:   manager,
		mu:        mu,
		validator: validator,
	}
}

// CredentialsRequest is the body of register and login calls
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse describes the logged-in user
type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	StartedAt time.Time `json:"started_at"`
}

func (h *AuthHandler) parseCredentials(c *fiber.Ctx) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, response.ValidationError(c, validation.FormatValidationErrors(err))
	}
	return &req, nil
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req, err := h.parseCredentials(c)
	if req == nil {
		return err
	}

	h.mu.Lock()
	ok, err := h.manager.Register(req.Username, req.Password)
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to register user")
	}
	if !ok {
		return response.Conflict(c, "Username already exists")
	}

	return response.Created(c, fiber.Map{"username": req.Username})
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := h.parseCredentials(c)
	if req == nil {
		return err
	}

	h.mu.Lock()
	ok, err := h.manager.Login(req.Username, req.Password)
	session := h.manager.CurrentSession()
	h.mu.Unlock()
	if err != nil {
		return response.InternalServerError(c, "Failed to log in")
	}
	if !ok {
		return response.Unauthorized(c, "Invalid username or password")
	}

	return response.SuccessWithMessage(c, "Login successful", toSessionResponse(session))
}

// Logout ends the current session. Logging out with no session is not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.mu.Lock()
	h.manager.Logout()
	h.mu.Unlock()

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// GetSession returns the current session or 401 when nobody is logged in
func (h *AuthHandler) GetSession(c *fiber.Ctx) error {
	h.mu.Lock()
	session := h.manager.CurrentSession()
	h.mu.Unlock()

	if session == nil {
		return response.Unauthorized(c, "Not logged in")
	}
	return response.Success(c, toSessionResponse(session))
}

func toSessionResponse(s *services.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Username:  s.User.Username,
		StartedAt: s.StartedAt,
	}
}

package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

type taskBody struct {
	Index        int    `json:"index"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Completed    bool   `json:"completed"`
	Overdue      bool   `json:"overdue"`
	DaysUntilDue int    `json:"days_until_due"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	store := database.NewSnapshotStore(database.NewFileMedium(), filepath.Join(dir, "tasks.json"), filepath.Join(dir, "users.json"), utils.DiscardLogger())
	manager := services.NewTaskManager(store, utils.DiscardLogger())

	app := fiber.New()
	SetupRoutes(app, manager, store)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decodeTasks(t *testing.T, env envelope) []taskBody {
	t.Helper()
	var tasks []taskBody
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	return tasks
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRoutes(t *testing.T) {
	app := setupApp(t)

	status, _ := do(t, app, http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/auth/register", `{"username":"ana","password":"pw"}`)
	assert.Equal(t, http.StatusCreated, status)

	status, env := do(t, app, http.MethodPost, "/auth/register", `{"username":"ana","password":"other"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, env = do(t, app, http.MethodPost, "/auth/register", `{"username":"","password":"pw"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Error.Fields, "username")

	status, _ = do(t, app, http.MethodPost, "/auth/login", `{"username":"ana","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = do(t, app, http.MethodPost, "/auth/login", `{"username":"ana","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	var session struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "ana", session.Username)

	status, _ = do(t, app, http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTaskRoutes(t *testing.T) {
	app := setupApp(t)

	status, env := do(t, app, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeTasks(t, env))

	status, env = do(t, app, http.MethodPost, "/tasks", `{"title":"late","due_date":"2000-01-01"}`)
	require.Equal(t, http.StatusCreated, status)
	var created taskBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 0, created.Index)
	assert.True(t, created.Overdue)
	assert.Equal(t, 0, created.DaysUntilDue)

	status, _ = do(t, app, http.MethodPost, "/tasks", `{"title":"later","description":"d","due_date":"2999-01-01"}`)
	require.Equal(t, http.StatusCreated, status)

	status, env = do(t, app, http.MethodPost, "/tasks/1/complete", "")
	require.Equal(t, http.StatusOK, status)
	var completed taskBody
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	assert.True(t, completed.Completed)
	assert.Equal(t, "later", completed.Title)

	status, env = do(t, app, http.MethodGet, "/tasks?status=completed", "")
	require.Equal(t, http.StatusOK, status)
	tasks := decodeTasks(t, env)
	require.Len(t, tasks, 1)
	assert.Equal(t, 1, tasks[0].Index)

	status, env = do(t, app, http.MethodGet, "/tasks?status=overdue", "")
	require.Equal(t, http.StatusOK, status)
	tasks = decodeTasks(t, env)
	require.Len(t, tasks, 1)
	assert.Equal(t, "late", tasks[0].Title)

	status, env = do(t, app, http.MethodPatch, "/tasks/0", `{"description":"now with notes"}`)
	require.Equal(t, http.StatusOK, status)
	var updated taskBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "late", updated.Title)
	assert.Equal(t, "now with notes", updated.Description)

	status, _ = do(t, app, http.MethodDelete, "/tasks/0", "")
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, app, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, status)
	tasks = decodeTasks(t, env)
	require.Len(t, tasks, 1)
	assert.Equal(t, "later", tasks[0].Title)
	assert.Equal(t, 0, tasks[0].Index)
}

func TestTaskRouteErrors(t *testing.T) {
	app := setupApp(t)

	status, env := do(t, app, http.MethodPost, "/tasks", `{"description":"no title"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Error.Fields, "title")

	status, env = do(t, app, http.MethodPost, "/tasks", `{"title":"x","due_date":"31/12/2026"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid date format. Please use YYYY-MM-DD", env.Error.Fields["duedate"])

	status, _ = do(t, app, http.MethodPost, "/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	for _, path := range []string{"/tasks/0/complete", "/tasks/-1/complete", "/tasks/7/complete"} {
		status, env = do(t, app, http.MethodPost, path, "")
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	}

	status, _ = do(t, app, http.MethodDelete, "/tasks/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPatch, "/tasks/3", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

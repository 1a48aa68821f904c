package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthStore struct {
	database.Storage
	err error
}

func (s healthStore) HealthCheck() error { return s.err }

func TestHandleCheckHealth(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"healthy", nil, http.StatusOK},
		{"unreachable", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			store := healthStore{err: tc.err}
			app.Get("/health", func(c *fiber.Ctx) error { return HandleCheckHealth(c, store) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

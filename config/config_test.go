package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	for _, key := range []string{"STORAGE_DRIVER", "TASKS_FILE", "USERS_FILE", "PORT", "LOG_FORMAT", "CRON_ENABLED", "RATE_LIMIT_REQUESTS", "SMTP_PORT", "REMINDER_EMAIL"} {
		t.Setenv(key, "")
	}

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, DriverFile, env.STORAGE_DRIVER)
	assert.Equal(t, "tasks.json", env.TASKS_FILE)
	assert.Equal(t, "users.json", env.USERS_FILE)
	assert.Equal(t, 8080, env.PORT)
	assert.True(t, env.CRON_ENABLED)
	assert.Equal(t, 100, env.RATE_LIMIT_REQUESTS)
	assert.Equal(t, 587, env.SMTP_PORT)
	assert.NoError(t, env.Validate())
}

func TestValidateReminderEmail(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("REMINDER_EMAIL", "not-an-address")

	env, err := Get()
	require.NoError(t, err)
	assert.Error(t, env.Validate())

	t.Setenv("REMINDER_EMAIL", "me@example.com")
	env, err = Get()
	require.NoError(t, err)
	assert.NoError(t, env.Validate())
}

func TestValidateRequiresDriverSettings(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverRedis)
	t.Setenv("REDIS_URL", "")

	env, err := Get()
	require.NoError(t, err)
	assert.Error(t, env.Validate())

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	env, err = Get()
	require.NoError(t, err)
	assert.NoError(t, env.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	env, err := Get()
	require.NoError(t, err)
	assert.Error(t, env.Validate())
}

func TestCronCanBeDisabled(t *testing.T) {
	t.Setenv("CRON_ENABLED", "false")

	env, err := Get()
	require.NoError(t, err)
	assert.False(t, env.CRON_ENABLED)
}

package app

import (
	"path/filepath"
	"testing"

	"github.com/sahilchouksey/task-tracker/config"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileEnv(t *testing.T) *config.EnvironmentVariable {
	dir := t.TempDir()
	return &config.EnvironmentVariable{
		STORAGE_DRIVER: config.DriverFile,
		TASKS_FILE:     filepath.Join(dir, "tasks.json"),
		USERS_FILE:     filepath.Join(dir, "users.json"),
		PORT:           8080,
		LOG_FORMAT:     "text",
	}
}

func TestSetupStorageFile(t *testing.T) {
	store, err := SetupStorage(fileEnv(t), utils.DiscardLogger())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &database.SnapshotStore{}, store)
	assert.NoError(t, store.HealthCheck())
}

func TestSetupStorageRejectsIncompleteConfig(t *testing.T) {
	env := fileEnv(t)
	env.STORAGE_DRIVER = config.DriverSpaces

	_, err := SetupStorage(env, utils.DiscardLogger())
	assert.ErrorContains(t, err, "invalid configuration")
}

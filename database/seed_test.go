package database

import (
	"testing"
	"time"

	"github.com/sahilchouksey/task-tracker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAllOnEmptyStore(t *testing.T) {
	store, _, _ := newFileStore(t)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	seeder := NewSeeder(store, utils.DiscardLogger())
	seeder.now = func() time.Time { return now }

	require.NoError(t, seeder.SeedAll("demo", "demo-pass"))

	user, err := store.GetUser("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo-pass", user.Password)

	tasks, err := store.GetAllTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.True(t, tasks[0].IsOverdueAt(now))
	assert.True(t, tasks[1].Completed)
	assert.False(t, tasks[2].IsOverdueAt(now))
}

func TestSeedIsIdempotent(t *testing.T) {
	store, _, _ := newFileStore(t)
	seeder := NewSeeder(store, utils.DiscardLogger())

	require.NoError(t, seeder.SeedAll("demo", "one"))
	require.NoError(t, seeder.SeedAll("demo", "two"))

	user, err := store.GetUser("demo")
	require.NoError(t, err)
	assert.Equal(t, "one", user.Password)
	users, err := store.LoadUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)

	tasks, err := store.GetAllTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestSeedWithoutCredentialsSkipsUser(t *testing.T) {
	store, _, _ := newFileStore(t)
	require.NoError(t, NewSeeder(store, utils.DiscardLogger()).SeedAll("", ""))
	users, err := store.LoadUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

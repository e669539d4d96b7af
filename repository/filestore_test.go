package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflow/model"
)

func TestFileStateStoreDefaultsOnFirstRead(t *testing.T) {
	store, err := NewFileStateStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	state, err := store.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.RemindersEnabled)
	assert.Empty(t, state.CustomItems)
}

func TestFileStateStoreRoundTrip(t *testing.T) {
	store, err := NewFileStateStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	state := model.DefaultPlannerState().
		WithReminderTime(model.TaskWater, "07:00").
		WithCustomItem(model.CustomItem{ID: "c1", Title: "Call mom", Date: "2024-03-10", Time: "09:00"}).
		WithCompletion("2024-03-10", "required-water", true)

	require.NoError(t, store.SaveState(ctx, "user-1", state))

	loaded, err := store.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	// Per-user isolation: another user still gets defaults.
	other, err := store.GetState(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.CustomItems)
}

func TestFileStateStoreDelete(t *testing.T) {
	store, err := NewFileStateStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	state := model.DefaultPlannerState().WithRemindersEnabled(false)
	require.NoError(t, store.SaveState(ctx, "user-1", state))
	require.NoError(t, store.DeleteState(ctx, "user-1"))

	// Deleting an absent state is not an error.
	require.NoError(t, store.DeleteState(ctx, "user-1"))

	fresh, err := store.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, fresh.RemindersEnabled)
}

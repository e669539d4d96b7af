package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlannerState(t *testing.T) {
	state := DefaultPlannerState()
	assert.True(t, state.RemindersEnabled)
	assert.Empty(t, state.CustomItems)
	assert.Equal(t, "06:45", state.ReminderTime(TaskWater))
	assert.Equal(t, "07:15", state.ReminderTime(TaskExercise))
	assert.Equal(t, "07:45", state.ReminderTime(TaskMeditation))
}

func TestWithCompletionDoesNotMutateReceiver(t *testing.T) {
	original := DefaultPlannerState()
	updated := original.WithCompletion("2024-03-10", "required-water", true)

	assert.True(t, updated.Completed("2024-03-10", "required-water"))
	assert.False(t, original.Completed("2024-03-10", "required-water"))
	assert.Nil(t, original.Completions)
}

func TestWithCompletionClearingKeepsMapSparse(t *testing.T) {
	state := DefaultPlannerState().
		WithCompletion("2024-03-10", "required-water", true).
		WithCompletion("2024-03-10", "required-water", false)

	assert.False(t, state.Completed("2024-03-10", "required-water"))
	assert.Empty(t, state.Completions)
}

func TestWithCustomItemKeepsSortedAndDefaultsRepeat(t *testing.T) {
	state := DefaultPlannerState().
		WithCustomItem(CustomItem{ID: "b", Title: "B", Date: "2024-03-11", Time: "09:00"}).
		WithCustomItem(CustomItem{ID: "a", Title: "A", Date: "2024-03-10", Time: "12:00"}).
		WithCustomItem(CustomItem{ID: "c", Title: "C", Date: "2024-03-10", Time: "08:00", Repeat: RepeatDaily})

	require.Len(t, state.CustomItems, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{
		state.CustomItems[0].ID, state.CustomItems[1].ID, state.CustomItems[2].ID,
	})
	assert.Equal(t, RepeatOnce, state.CustomItems[1].Repeat)
	assert.Equal(t, RepeatDaily, state.CustomItems[0].Repeat)
}

func TestWithoutCustomItemRemovesCompletions(t *testing.T) {
	state := DefaultPlannerState().
		WithCustomItem(CustomItem{ID: "c1", Title: "X", Date: "2024-03-10", Time: "10:00"}).
		WithCompletion("2024-03-10", "c1", true)

	pruned := state.WithoutCustomItem("c1")
	assert.Empty(t, pruned.CustomItems)
	assert.Empty(t, pruned.Completions)

	// The source state keeps both the item and its completion.
	assert.Len(t, state.CustomItems, 1)
	assert.True(t, state.Completed("2024-03-10", "c1"))
}

func TestWithReminderTimeOverrideAndReset(t *testing.T) {
	state := DefaultPlannerState().WithReminderTime(TaskWater, "07:00")
	assert.Equal(t, "07:00", state.ReminderTime(TaskWater))

	reset := state.WithReminderTime(TaskWater, "")
	assert.Equal(t, "06:45", reset.ReminderTime(TaskWater))
}

func TestIsValidRequiredTask(t *testing.T) {
	assert.True(t, IsValidRequiredTask(TaskWater))
	assert.True(t, IsValidRequiredTask(TaskExercise))
	assert.True(t, IsValidRequiredTask(TaskMeditation))
	assert.False(t, IsValidRequiredTask("sleep"))
}

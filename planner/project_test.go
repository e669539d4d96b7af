package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflow/model"
)

func TestProjectEntriesAlwaysHasThreeRequired(t *testing.T) {
	states := []model.PlannerState{
		{},
		model.DefaultPlannerState(),
		{CustomItems: []model.CustomItem{
			{ID: "c1", Title: "Stretch", Date: "2024-03-10", Time: "08:00", Repeat: model.RepeatOnce},
			{ID: "c2", Title: "Walk", Date: "2024-03-01", Time: "18:00", Repeat: model.RepeatDaily},
		}},
	}
	for _, state := range states {
		entries := ProjectEntries("2024-03-10", state)
		var required int
		for _, e := range entries {
			if e.Required {
				required++
			}
		}
		assert.Equal(t, 3, required)
	}
}

func TestProjectEntriesIsPure(t *testing.T) {
	state := model.PlannerState{
		RemindersEnabled: true,
		ReminderTimes:    map[model.RequiredTask]string{model.TaskWater: "07:00"},
		CustomItems: []model.CustomItem{
			{ID: "c1", Title: "Call mom", Date: "2024-03-10", Time: "09:00", Repeat: model.RepeatOnce},
		},
		Completions: map[string]map[string]bool{
			"2024-03-10": {"required-water": true},
		},
	}
	first := ProjectEntries("2024-03-10", state)
	second := ProjectEntries("2024-03-10", state)
	assert.Equal(t, first, second)
}

func TestProjectEntriesDefaultTimesAndOverrides(t *testing.T) {
	entries := ProjectEntries("2024-03-10", model.PlannerState{
		ReminderTimes: map[model.RequiredTask]string{model.TaskExercise: "05:30"},
	})
	require.Len(t, entries, 3)

	// The exercise override moves it ahead of the water default.
	assert.Equal(t, "required-exercise", entries[0].ID)
	assert.Equal(t, "05:30", entries[0].Time)
	assert.Equal(t, "required-water", entries[1].ID)
	assert.Equal(t, "06:45", entries[1].Time)
	assert.Equal(t, "required-meditation", entries[2].ID)
	assert.Equal(t, "07:45", entries[2].Time)
}

func TestDailyItemAppearsFromStartDateOnward(t *testing.T) {
	state := model.PlannerState{CustomItems: []model.CustomItem{
		{ID: "c1", Title: "Walk", Date: "2024-03-10", Time: "18:00", Repeat: model.RepeatDaily},
	}}

	assert.False(t, containsEntry(ProjectEntries("2024-03-09", state), "c1"))
	assert.True(t, containsEntry(ProjectEntries("2024-03-10", state), "c1"))
	assert.True(t, containsEntry(ProjectEntries("2024-03-11", state), "c1"))
	assert.True(t, containsEntry(ProjectEntries("2025-01-01", state), "c1"))
}

func TestOnceItemAppearsOnItsDateOnly(t *testing.T) {
	state := model.PlannerState{CustomItems: []model.CustomItem{
		{ID: "c1", Title: "Dentist", Date: "2024-03-10", Time: "14:00", Repeat: model.RepeatOnce},
	}}

	assert.False(t, containsEntry(ProjectEntries("2024-03-09", state), "c1"))
	assert.True(t, containsEntry(ProjectEntries("2024-03-10", state), "c1"))
	assert.False(t, containsEntry(ProjectEntries("2024-03-11", state), "c1"))
}

func TestProjectEntriesSortsByTimeWithStableTies(t *testing.T) {
	state := model.PlannerState{
		ReminderTimes: map[model.RequiredTask]string{model.TaskWater: "09:00"},
		CustomItems: []model.CustomItem{
			{ID: "c1", Title: "A", Date: "2024-03-10", Time: "09:00", Repeat: model.RepeatOnce},
			{ID: "c2", Title: "B", Date: "2024-03-10", Time: "06:00", Repeat: model.RepeatOnce},
		},
	}
	entries := ProjectEntries("2024-03-10", state)
	require.Len(t, entries, 5)

	assert.Equal(t, "c2", entries[0].ID)
	assert.Equal(t, "required-exercise", entries[1].ID)
	assert.Equal(t, "required-meditation", entries[2].ID)
	// 09:00 tie: required entries precede custom ones.
	assert.Equal(t, "required-water", entries[3].ID)
	assert.Equal(t, "c1", entries[4].ID)
}

func TestProjectEntriesCompletionLookup(t *testing.T) {
	state := model.PlannerState{
		CustomItems: []model.CustomItem{
			{ID: "c1", Title: "Walk", Date: "2024-03-01", Time: "18:00", Repeat: model.RepeatDaily},
		},
		Completions: map[string]map[string]bool{
			"2024-03-10": {"required-water": true, "c1": true},
		},
	}

	for _, e := range ProjectEntries("2024-03-10", state) {
		completed := e.ID == "required-water" || e.ID == "c1"
		assert.Equal(t, completed, e.Completed, "entry %s", e.ID)
	}
	// Completion is per-day: the next day starts fresh.
	for _, e := range ProjectEntries("2024-03-11", state) {
		assert.False(t, e.Completed, "entry %s", e.ID)
	}
}

func TestProjectEntriesSkipsMalformedItems(t *testing.T) {
	state := model.PlannerState{CustomItems: []model.CustomItem{
		{ID: "bad", Title: "No clock", Date: "2024-03-10", Time: "later", Repeat: model.RepeatOnce},
		{ID: "good", Title: "Fine", Date: "2024-03-10", Time: "10:00", Repeat: model.RepeatOnce},
	}}
	entries := ProjectEntries("2024-03-10", state)

	assert.False(t, containsEntry(entries, "bad"))
	assert.True(t, containsEntry(entries, "good"))
}

func containsEntry(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

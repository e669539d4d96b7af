package planner

import (
	"sort"

	"zenflow/model"
)

// Entry is one row of a day's planner: a required habit or a custom item,
// flagged with that day's completion state. Entries are derived on every
// read and never persisted.
type Entry struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Required  bool             `json:"required"`
	Completed bool             `json:"completed"`
	Repeat    model.RepeatMode `json:"repeat,omitempty"`
}

// RequiredEntryID is the stable entry id for a required task.
func RequiredEntryID(task model.RequiredTask) string {
	return "required-" + string(task)
}

var requiredTitles = map[model.RequiredTask]string{
	model.TaskWater:      "Drink water",
	model.TaskExercise:   "Exercise",
	model.TaskMeditation: "Meditate",
}

// ProjectEntries derives the ordered task list for one day. It is a pure
// function of its inputs: the three required tasks in fixed order, then
// the custom items due that day, the whole list stable-sorted by time.
// Zero-padded HH:MM strings make the string sort a valid time ordering.
func ProjectEntries(dateKey string, state model.PlannerState) []Entry {
	entries := make([]Entry, 0, len(model.RequiredTasks)+len(state.CustomItems))

	for _, task := range model.RequiredTasks {
		id := RequiredEntryID(task)
		entries = append(entries, Entry{
			ID:        id,
			Title:     requiredTitles[task],
			Date:      dateKey,
			Time:      state.ReminderTime(task),
			Required:  true,
			Completed: state.Completed(dateKey, id),
			Repeat:    model.RepeatDaily,
		})
	}

	for _, item := range state.CustomItems {
		if !customItemDue(item, dateKey) {
			continue
		}
		if _, _, err := ParseClock(item.Time); err != nil {
			// A malformed item must not poison the rest of the day.
			continue
		}
		entries = append(entries, Entry{
			ID:        item.ID,
			Title:     item.Title,
			Date:      dateKey,
			Time:      item.Time,
			Required:  false,
			Completed: state.Completed(dateKey, item.ID),
			Repeat:    item.Repeat,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})
	return entries
}

// customItemDue applies the inclusion rule: a daily item appears on its
// start date and every later day, a one-time item only on its own date.
func customItemDue(item model.CustomItem, dateKey string) bool {
	if item.Repeat == model.RepeatDaily {
		return item.Date <= dateKey
	}
	return item.Date == dateKey
}

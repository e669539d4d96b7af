package model

type RequiredTask string
type RepeatMode string

const (
	TaskWater      RequiredTask = "water"
	TaskExercise   RequiredTask = "exercise"
	TaskMeditation RequiredTask = "meditation"

	RepeatOnce  RepeatMode = "once"
	RepeatDaily RepeatMode = "daily"
)

// RequiredTasks is the fixed projection order for the three daily habits.
var RequiredTasks = []RequiredTask{TaskWater, TaskExercise, TaskMeditation}

// DefaultReminderTimes holds the fallback reminder time for each required
// task when the user has not configured one.
var DefaultReminderTimes = map[RequiredTask]string{
	TaskWater:      "06:45",
	TaskExercise:   "07:15",
	TaskMeditation: "07:45",
}

// CustomItem is a user-added planner task. Date is a YYYY-MM-DD key; for
// daily-repeating items it marks the first day the item appears.
type CustomItem struct {
	ID     string     `bson:"id" json:"id"`
	Title  string     `bson:"title" json:"title" binding:"required"`
	Date   string     `bson:"date" json:"date"`
	Time   string     `bson:"time" json:"time"`
	Repeat RepeatMode `bson:"repeat,omitempty" json:"repeat,omitempty"`
}

// PlannerState is the persisted planner preference document, stored on the
// account meta record. It is treated as immutable: every mutation helper
// returns a fresh copy and leaves the receiver untouched.
type PlannerState struct {
	RemindersEnabled bool                       `bson:"reminders_enabled" json:"remindersEnabled"`
	ReminderTimes    map[RequiredTask]string    `bson:"reminder_times,omitempty" json:"reminderTimes,omitempty"`
	CustomItems      []CustomItem               `bson:"custom_items,omitempty" json:"customItems,omitempty"`
	Completions      map[string]map[string]bool `bson:"completions,omitempty" json:"completions,omitempty"`
}

// DefaultPlannerState is the state created on first account meta read.
func DefaultPlannerState() PlannerState {
	return PlannerState{RemindersEnabled: true}
}

// ReminderTime resolves the effective reminder time for a required task.
func (s PlannerState) ReminderTime(task RequiredTask) string {
	if t, ok := s.ReminderTimes[task]; ok && t != "" {
		return t
	}
	return DefaultReminderTimes[task]
}

// Completed reports whether the entry has been checked off on the given day.
func (s PlannerState) Completed(dateKey, entryID string) bool {
	return s.Completions[dateKey][entryID]
}

func (s PlannerState) clone() PlannerState {
	out := PlannerState{RemindersEnabled: s.RemindersEnabled}
	if s.ReminderTimes != nil {
		out.ReminderTimes = make(map[RequiredTask]string, len(s.ReminderTimes))
		for k, v := range s.ReminderTimes {
			out.ReminderTimes[k] = v
		}
	}
	if s.CustomItems != nil {
		out.CustomItems = make([]CustomItem, len(s.CustomItems))
		copy(out.CustomItems, s.CustomItems)
	}
	if s.Completions != nil {
		out.Completions = make(map[string]map[string]bool, len(s.Completions))
		for day, entries := range s.Completions {
			inner := make(map[string]bool, len(entries))
			for id, done := range entries {
				inner[id] = done
			}
			out.Completions[day] = inner
		}
	}
	return out
}

// WithCompletion returns a copy with the entry's completion flag set for
// the given day. Clearing the flag removes the key so the map stays sparse.
func (s PlannerState) WithCompletion(dateKey, entryID string, done bool) PlannerState {
	out := s.clone()
	if done {
		if out.Completions == nil {
			out.Completions = make(map[string]map[string]bool)
		}
		if out.Completions[dateKey] == nil {
			out.Completions[dateKey] = make(map[string]bool)
		}
		out.Completions[dateKey][entryID] = true
		return out
	}
	if out.Completions[dateKey] != nil {
		delete(out.Completions[dateKey], entryID)
		if len(out.Completions[dateKey]) == 0 {
			delete(out.Completions, dateKey)
		}
	}
	return out
}

// WithCustomItem returns a copy with the item appended, keeping the list
// sorted by (date, time).
func (s PlannerState) WithCustomItem(item CustomItem) PlannerState {
	out := s.clone()
	if item.Repeat == "" {
		item.Repeat = RepeatOnce
	}
	out.CustomItems = append(out.CustomItems, item)
	sortCustomItems(out.CustomItems)
	return out
}

// WithoutCustomItem returns a copy with the item removed, along with any
// completion flags recorded against it.
func (s PlannerState) WithoutCustomItem(itemID string) PlannerState {
	out := s.clone()
	kept := out.CustomItems[:0]
	for _, item := range out.CustomItems {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	out.CustomItems = kept
	for day, entries := range out.Completions {
		delete(entries, itemID)
		if len(entries) == 0 {
			delete(out.Completions, day)
		}
	}
	return out
}

// WithReminderTime returns a copy with the task's reminder time overridden.
// An empty time reverts the task to its default.
func (s PlannerState) WithReminderTime(task RequiredTask, hhmm string) PlannerState {
	out := s.clone()
	if hhmm == "" {
		delete(out.ReminderTimes, task)
		return out
	}
	if out.ReminderTimes == nil {
		out.ReminderTimes = make(map[RequiredTask]string)
	}
	out.ReminderTimes[task] = hhmm
	return out
}

// WithRemindersEnabled returns a copy with the global reminder switch set.
func (s PlannerState) WithRemindersEnabled(enabled bool) PlannerState {
	out := s.clone()
	out.RemindersEnabled = enabled
	return out
}

func sortCustomItems(items []CustomItem) {
	// Insertion sort keeps equal (date, time) pairs in insertion order,
	// which the projector relies on for tie-breaking.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			a, b := items[j-1], items[j]
			if a.Date < b.Date || (a.Date == b.Date && a.Time <= b.Time) {
				break
			}
			items[j-1], items[j] = b, a
		}
	}
}

// IsValidRequiredTask reports whether the key names one of the three
// fixed daily habits.
func IsValidRequiredTask(task RequiredTask) bool {
	switch task {
	case TaskWater, TaskExercise, TaskMeditation:
		return true
	}
	return false
}

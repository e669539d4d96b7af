package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"zenflow/model"
)

// ErrPermissionDenied is returned when the device refuses notification
// permission; nothing is scheduled or cancelled in that case.
var ErrPermissionDenied = errors.New("notification permission denied")

// LookaheadDays is the forward horizon for one-shot follow-up reminders.
const LookaheadDays = 5

// escalationOffsets holds, per required task, the minute offsets past the
// base due time at which follow-up nags fire while the task is pending.
// Offsets are all relative to the base time, never chained to each other.
var escalationOffsets = map[model.RequiredTask][]int{
	model.TaskWater:      {10, 20, 30, 45, 60},
	model.TaskExercise:   {15, 30, 45},
	model.TaskMeditation: {15, 30, 45},
}

var followUpBodies = map[model.RequiredTask]string{
	model.TaskWater:      "Still thirsty? Log a glass of water.",
	model.TaskExercise:   "Your workout is still waiting.",
	model.TaskMeditation: "A few mindful minutes are still on your plan.",
}

// Scheduler reconciles a device's pending notifications with the reminder
// set implied by a planner state: it cancels everything it previously
// owned and schedules a freshly computed set, so calling it after every
// save is safe.
type Scheduler struct {
	port Port
}

func NewScheduler(port Port) *Scheduler {
	return &Scheduler{port: port}
}

// ScheduleReminders replaces the device's planner notifications with the
// set derived from state at the given reference instant.
//
// Permission denial is the one hard failure: it returns
// ErrPermissionDenied with no side effects. Failures while listing or
// cancelling pending notifications are logged and treated as an empty
// pending set. A failure of the final batch schedule call is returned to
// the caller, since it means no reminders are active at all.
func (s *Scheduler) ScheduleReminders(ctx context.Context, state model.PlannerState, reference time.Time) error {
	granted, err := s.ensurePermission(ctx)
	if err != nil {
		return err
	}
	if !granted {
		return ErrPermissionDenied
	}

	if err := s.port.CreateChannel(ctx, Channel{
		ID:          BaseChannelID,
		Name:        "Planner reminders",
		Description: "Daily habit and task reminders",
		Importance:  4,
	}); err != nil {
		log.Printf("planner: channel registration failed: %v", err)
	}

	s.cancelOwned(ctx)

	if !state.RemindersEnabled {
		// The sweep above already cleared everything.
		return nil
	}

	notifications := BuildDescriptors(state, reference)
	if len(notifications) == 0 {
		return nil
	}
	if err := s.port.Schedule(ctx, notifications); err != nil {
		return fmt.Errorf("scheduling reminders: %w", err)
	}
	return nil
}

func (s *Scheduler) ensurePermission(ctx context.Context) (bool, error) {
	perm, err := s.port.CheckPermissions(ctx)
	if err != nil {
		return false, fmt.Errorf("checking notification permission: %w", err)
	}
	if perm == PermissionGranted {
		return true, nil
	}
	perm, err = s.port.RequestPermissions(ctx)
	if err != nil {
		return false, fmt.Errorf("requesting notification permission: %w", err)
	}
	return perm == PermissionGranted, nil
}

// cancelOwned removes every pending notification tagged as planner-owned.
// Enumeration or cancellation errors are non-fatal: scheduling proceeds
// as if nothing was pending, and the deterministic ids keep re-emits from
// stacking up duplicates.
func (s *Scheduler) cancelOwned(ctx context.Context) {
	pending, err := s.port.Pending(ctx)
	if err != nil {
		log.Printf("planner: listing pending notifications failed: %v", err)
		return
	}
	var owned []int
	for _, n := range pending {
		if n.Extra.Kind == KindPlanner {
			owned = append(owned, n.ID)
		}
	}
	if len(owned) == 0 {
		return
	}
	if err := s.port.Cancel(ctx, owned); err != nil {
		log.Printf("planner: cancelling %d notifications failed: %v", len(owned), err)
	}
}

// BuildDescriptors computes the full notification set for a state at a
// reference instant. It is pure: the same inputs always produce the same
// descriptors in the same order, ids included.
func BuildDescriptors(state model.PlannerState, reference time.Time) []Notification {
	var out []Notification

	// One repeating descriptor per required task, anchored at its
	// effective wall-clock time. These are unconditional: a repeating
	// trigger is not tied to any single day, so per-day completion only
	// suppresses the follow-ups below.
	for order, task := range model.RequiredTasks {
		hour, minute, err := ParseClock(state.ReminderTime(task))
		if err != nil {
			continue
		}
		out = append(out, Notification{
			ID:        NotificationID("daily-" + string(task)),
			Title:     requiredTitles[task],
			Body:      fmt.Sprintf("Daily reminder for %s.", task),
			Schedule:  Schedule{On: &ClockTime{Hour: hour, Minute: minute}, Repeats: true},
			ChannelID: BaseChannelID,
			Extra: Extra{
				Kind:     KindPlanner,
				TaskID:   RequiredEntryID(task),
				Required: true,
				Order:    order,
				Loop:     "daily-base",
			},
		})
	}

	startKey := DateKey(reference)
	for offset := 0; offset < LookaheadDays; offset++ {
		dayKey := ShiftDateKey(startKey, offset)
		out = append(out, followUpsForDay(state, dayKey, reference)...)
		out = append(out, customOneShotsForDay(state, dayKey, reference)...)
	}

	// Daily-repeating custom items get one global repeating descriptor,
	// never one-shots inside the window, so a recurring concept is not
	// duplicated per day.
	for _, item := range state.CustomItems {
		if item.Repeat != model.RepeatDaily {
			continue
		}
		hour, minute, err := ParseClock(item.Time)
		if err != nil {
			continue
		}
		out = append(out, Notification{
			ID:        NotificationID("daily-custom-" + item.ID),
			Title:     item.Title,
			Body:      fmt.Sprintf("Daily at %s.", item.Time),
			Schedule:  Schedule{On: &ClockTime{Hour: hour, Minute: minute}, Repeats: true},
			ChannelID: BaseChannelID,
			Extra: Extra{
				Kind:   KindPlanner,
				TaskID: item.ID,
				Loop:   "daily-base",
			},
		})
	}

	return out
}

// followUpsForDay emits the escalation one-shots for one day's required
// tasks. A task completed on that day, or whose base time is already at
// or before the reference, contributes nothing.
func followUpsForDay(state model.PlannerState, dayKey string, reference time.Time) []Notification {
	var out []Notification
	for _, task := range model.RequiredTasks {
		entryID := RequiredEntryID(task)
		if state.Completed(dayKey, entryID) {
			continue
		}
		base, err := DueInstant(dayKey, state.ReminderTime(task))
		if err != nil {
			continue
		}
		if !base.After(reference) {
			continue
		}
		for idx, minutes := range escalationOffsets[task] {
			at := base.Add(time.Duration(minutes) * time.Minute)
			if !at.After(reference) {
				continue
			}
			out = append(out, Notification{
				ID:        NotificationID(fmt.Sprintf("%s-%s-followup-%d", dayKey, entryID, idx)),
				Title:     requiredTitles[task],
				Body:      followUpBodies[task],
				Schedule:  Schedule{At: &at},
				ChannelID: BaseChannelID,
				Extra: Extra{
					Kind:          KindPlanner,
					TaskID:        entryID,
					DateKey:       dayKey,
					Required:      true,
					ReminderIndex: idx,
					Loop:          "follow-up",
				},
			})
		}
	}
	return out
}

// customOneShotsForDay emits descriptors for pending one-time custom
// items due on the given day. Malformed items are skipped, never fatal.
func customOneShotsForDay(state model.PlannerState, dayKey string, reference time.Time) []Notification {
	var out []Notification
	for _, item := range state.CustomItems {
		if item.Repeat == model.RepeatDaily || item.Date != dayKey {
			continue
		}
		if state.Completed(dayKey, item.ID) {
			continue
		}
		at, err := DueInstant(dayKey, item.Time)
		if err != nil {
			continue
		}
		if !at.After(reference) {
			continue
		}
		out = append(out, Notification{
			ID:        NotificationID(fmt.Sprintf("%s-custom-%s", dayKey, item.ID)),
			Title:     item.Title,
			Body:      fmt.Sprintf("Scheduled for %s.", item.Time),
			Schedule:  Schedule{At: &at},
			ChannelID: BaseChannelID,
			Extra: Extra{
				Kind:    KindPlanner,
				TaskID:  item.ID,
				DateKey: dayKey,
				Loop:    "one-shot",
			},
		})
	}
	return out
}

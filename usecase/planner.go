package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"zenflow/model"
	"zenflow/planner"
	"zenflow/repository"
	"zenflow/utils"
)

// RescheduleStatus reports what happened to the device's reminders after
// a successful planner save. The save itself never rolls back on a
// reminder failure.
type RescheduleStatus string

const (
	RescheduleOK               RescheduleStatus = "scheduled"
	RescheduleDisabled         RescheduleStatus = "disabled"
	ReschedulePermissionDenied RescheduleStatus = "permission_denied"
	RescheduleFailed           RescheduleStatus = "failed"
)

// SaveResult is the outcome of a planner mutation: the persisted state
// plus the reminder rescheduling status. RescheduleErr is set only when
// Status is RescheduleFailed.
type SaveResult struct {
	State         model.PlannerState
	Status        RescheduleStatus
	RescheduleErr error
}

// PortProvider hands out the device notification port for a user.
type PortProvider interface {
	PortFor(userID string) planner.Port
}

// PlannerService owns the save-then-reschedule flow. The scheduler's
// cancel-then-schedule sweep is not atomic, so mutations for the same
// user are serialized behind a per-user lock.
type PlannerService struct {
	Store repository.PlannerStateStore
	Ports PortProvider

	// Now is the reference clock, swappable in tests.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPlannerService(store repository.PlannerStateStore, ports PortProvider) *PlannerService {
	return &PlannerService{
		Store: store,
		Ports: ports,
		Now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func (svc *PlannerService) userLock(userID string) *sync.Mutex {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	lock, ok := svc.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		svc.locks[userID] = lock
	}
	return lock
}

// State returns the user's planner state, creating defaults on first read.
func (svc *PlannerService) State(ctx context.Context, userID string) (model.PlannerState, error) {
	return svc.Store.GetState(ctx, userID)
}

// Day projects the entry list for one date key.
func (svc *PlannerService) Day(ctx context.Context, userID, dateKey string) ([]planner.Entry, error) {
	state, err := svc.Store.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return planner.ProjectEntries(dateKey, state), nil
}

// SetRemindersEnabled flips the global reminder switch.
func (svc *PlannerService) SetRemindersEnabled(ctx context.Context, userID string, enabled bool) (SaveResult, error) {
	return svc.mutate(ctx, userID, func(state model.PlannerState) (model.PlannerState, error) {
		return state.WithRemindersEnabled(enabled), nil
	})
}

// SetReminderTime overrides (or, with an empty time, resets) one
// required task's reminder time.
func (svc *PlannerService) SetReminderTime(ctx context.Context, userID string, task model.RequiredTask, hhmm string) (SaveResult, error) {
	return svc.mutate(ctx, userID, func(state model.PlannerState) (model.PlannerState, error) {
		if !model.IsValidRequiredTask(task) {
			return state, fmt.Errorf("unknown required task %q", task)
		}
		if hhmm != "" {
			if _, _, err := planner.ParseClock(hhmm); err != nil {
				return state, err
			}
		}
		return state.WithReminderTime(task, hhmm), nil
	})
}

// AddCustomItem appends a custom task, assigning its id.
func (svc *PlannerService) AddCustomItem(ctx context.Context, userID string, item model.CustomItem) (SaveResult, error) {
	return svc.mutate(ctx, userID, func(state model.PlannerState) (model.PlannerState, error) {
		if item.Title == "" {
			return state, errors.New("item title is required")
		}
		if _, _, err := planner.ParseClock(item.Time); err != nil {
			return state, err
		}
		if item.Date != planner.DateKey(planner.ParseDateKey(item.Date)) {
			return state, fmt.Errorf("invalid date key %q", item.Date)
		}
		if item.ID == "" {
			item.ID = utils.GenerateID()
		}
		switch item.Repeat {
		case "", model.RepeatOnce, model.RepeatDaily:
		default:
			return state, fmt.Errorf("invalid repeat mode %q", item.Repeat)
		}
		return state.WithCustomItem(item), nil
	})
}

// RemoveCustomItem deletes a custom task and its completion history.
func (svc *PlannerService) RemoveCustomItem(ctx context.Context, userID, itemID string) (SaveResult, error) {
	return svc.mutate(ctx, userID, func(state model.PlannerState) (model.PlannerState, error) {
		found := false
		for _, item := range state.CustomItems {
			if item.ID == itemID {
				found = true
				break
			}
		}
		if !found {
			return state, errors.New("custom item not found")
		}
		return state.WithoutCustomItem(itemID), nil
	})
}

// ToggleEntry flips an entry's completion flag for one day.
func (svc *PlannerService) ToggleEntry(ctx context.Context, userID, dateKey, entryID string) (SaveResult, error) {
	return svc.mutate(ctx, userID, func(state model.PlannerState) (model.PlannerState, error) {
		for _, entry := range planner.ProjectEntries(dateKey, state) {
			if entry.ID == entryID {
				return state.WithCompletion(dateKey, entryID, !entry.Completed), nil
			}
		}
		return state, errors.New("entry not due on that day")
	})
}

// mutate loads, transforms, persists and reschedules under the user's
// lock. A transform error aborts before anything is written.
func (svc *PlannerService) mutate(ctx context.Context, userID string, transform func(model.PlannerState) (model.PlannerState, error)) (SaveResult, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := svc.Store.GetState(ctx, userID)
	if err != nil {
		return SaveResult{}, err
	}

	next, err := transform(state)
	if err != nil {
		return SaveResult{}, err
	}

	if err := svc.Store.SaveState(ctx, userID, next); err != nil {
		return SaveResult{}, err
	}

	result := SaveResult{State: next}
	result.Status, result.RescheduleErr = svc.reschedule(ctx, userID, next)
	return result, nil
}

func (svc *PlannerService) reschedule(ctx context.Context, userID string, state model.PlannerState) (RescheduleStatus, error) {
	sched := planner.NewScheduler(svc.Ports.PortFor(userID))
	reference := svc.Now()
	err := sched.ScheduleReminders(ctx, state, reference)
	switch {
	case errors.Is(err, planner.ErrPermissionDenied):
		utils.TrackReminderRun("permission_denied")
		return ReschedulePermissionDenied, nil
	case err != nil:
		utils.TrackReminderRun("failed")
		return RescheduleFailed, err
	case !state.RemindersEnabled:
		utils.TrackReminderRun("disabled")
		return RescheduleDisabled, nil
	default:
		utils.TrackReminderRun("scheduled")
		utils.ReminderDescriptorsScheduled.Observe(float64(len(planner.BuildDescriptors(state, reference))))
		return RescheduleOK, nil
	}
}

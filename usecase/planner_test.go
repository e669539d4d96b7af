package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflow/model"
	"zenflow/planner"
	"zenflow/repository"
)

// fakePort implements planner.Port in memory, tracking the pending set
// the way a device would.
type fakePort struct {
	permission  planner.PermissionState
	scheduleErr error
	pending     map[int]planner.Notification
}

func newFakePort() *fakePort {
	return &fakePort{permission: planner.PermissionGranted, pending: make(map[int]planner.Notification)}
}

func (p *fakePort) CheckPermissions(ctx context.Context) (planner.PermissionState, error) {
	return p.permission, nil
}

func (p *fakePort) RequestPermissions(ctx context.Context) (planner.PermissionState, error) {
	return p.permission, nil
}

func (p *fakePort) CreateChannel(ctx context.Context, ch planner.Channel) error { return nil }

func (p *fakePort) Pending(ctx context.Context) ([]planner.Notification, error) {
	out := make([]planner.Notification, 0, len(p.pending))
	for _, n := range p.pending {
		out = append(out, n)
	}
	return out, nil
}

func (p *fakePort) Cancel(ctx context.Context, ids []int) error {
	for _, id := range ids {
		delete(p.pending, id)
	}
	return nil
}

func (p *fakePort) Schedule(ctx context.Context, notifications []planner.Notification) error {
	if p.scheduleErr != nil {
		return p.scheduleErr
	}
	for _, n := range notifications {
		p.pending[n.ID] = n
	}
	return nil
}

type singlePortProvider struct{ port planner.Port }

func (p singlePortProvider) PortFor(userID string) planner.Port { return p.port }

func newTestService(t *testing.T, port planner.Port) *PlannerService {
	t.Helper()
	store, err := repository.NewFileStateStore(t.TempDir())
	require.NoError(t, err)

	svc := NewPlannerService(store, singlePortProvider{port: port})
	svc.Now = func() time.Time {
		return time.Date(2024, 3, 10, 6, 0, 0, 0, time.Local)
	}
	return svc
}

func TestAddCustomItemPersistsAndSchedules(t *testing.T) {
	port := newFakePort()
	svc := newTestService(t, port)
	ctx := context.Background()

	result, err := svc.AddCustomItem(ctx, "user-1", model.CustomItem{
		Title: "Call mom", Date: "2024-03-10", Time: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, RescheduleOK, result.Status)
	require.Len(t, result.State.CustomItems, 1)
	assert.NotEmpty(t, result.State.CustomItems[0].ID)
	assert.Equal(t, model.RepeatOnce, result.State.CustomItems[0].Repeat)

	// The device now holds the one-shot for the new item.
	itemID := result.State.CustomItems[0].ID
	_, ok := port.pending[planner.NotificationID("2024-03-10-custom-"+itemID)]
	assert.True(t, ok)

	// The store kept the new state.
	state, err := svc.State(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, result.State, state)
}

func TestAddCustomItemValidation(t *testing.T) {
	svc := newTestService(t, newFakePort())
	ctx := context.Background()

	cases := []model.CustomItem{
		{Title: "", Date: "2024-03-10", Time: "09:00"},
		{Title: "X", Date: "2024-03-10", Time: "9am"},
		{Title: "X", Date: "not-a-date", Time: "09:00"},
		{Title: "X", Date: "2024-03-10", Time: "09:00", Repeat: "weekly"},
	}
	for _, item := range cases {
		_, err := svc.AddCustomItem(ctx, "user-1", item)
		assert.Error(t, err, "item %+v should be rejected", item)
	}

	// Nothing was persisted by the failed attempts.
	state, err := svc.State(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, state.CustomItems)
}

func TestToggleEntrySuppressesFollowUps(t *testing.T) {
	port := newFakePort()
	svc := newTestService(t, port)
	ctx := context.Background()

	result, err := svc.ToggleEntry(ctx, "user-1", "2024-03-10", "required-water")
	require.NoError(t, err)
	assert.Equal(t, RescheduleOK, result.Status)
	assert.True(t, result.State.Completed("2024-03-10", "required-water"))

	_, ok := port.pending[planner.NotificationID("2024-03-10-required-water-followup-0")]
	assert.False(t, ok, "completed task must not keep follow-ups")

	// Base repeating reminder survives completion.
	_, ok = port.pending[planner.NotificationID("daily-water")]
	assert.True(t, ok)

	// Toggling back re-issues the follow-ups.
	result, err = svc.ToggleEntry(ctx, "user-1", "2024-03-10", "required-water")
	require.NoError(t, err)
	assert.False(t, result.State.Completed("2024-03-10", "required-water"))
	_, ok = port.pending[planner.NotificationID("2024-03-10-required-water-followup-0")]
	assert.True(t, ok)
}

func TestToggleEntryRejectsEntriesNotDue(t *testing.T) {
	svc := newTestService(t, newFakePort())
	_, err := svc.ToggleEntry(context.Background(), "user-1", "2024-03-10", "no-such-entry")
	assert.Error(t, err)
}

func TestDisableRemindersClearsDevice(t *testing.T) {
	port := newFakePort()
	svc := newTestService(t, port)
	ctx := context.Background()

	_, err := svc.SetReminderTime(ctx, "user-1", model.TaskWater, "07:00")
	require.NoError(t, err)
	require.NotEmpty(t, port.pending)

	result, err := svc.SetRemindersEnabled(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, RescheduleDisabled, result.Status)
	assert.Empty(t, port.pending)
}

func TestPermissionDeniedStillSaves(t *testing.T) {
	port := newFakePort()
	port.permission = planner.PermissionDenied
	svc := newTestService(t, port)
	ctx := context.Background()

	result, err := svc.SetReminderTime(ctx, "user-1", model.TaskWater, "07:00")
	require.NoError(t, err, "a reminder failure must not fail the save")
	assert.Equal(t, ReschedulePermissionDenied, result.Status)

	state, err := svc.State(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "07:00", state.ReminderTime(model.TaskWater))
}

func TestScheduleFailureReportedButSaved(t *testing.T) {
	port := newFakePort()
	port.scheduleErr = errors.New("device gone")
	svc := newTestService(t, port)

	result, err := svc.SetReminderTime(context.Background(), "user-1", model.TaskWater, "07:00")
	require.NoError(t, err)
	assert.Equal(t, RescheduleFailed, result.Status)
	assert.ErrorContains(t, result.RescheduleErr, "device gone")
}

func TestSetReminderTimeValidation(t *testing.T) {
	svc := newTestService(t, newFakePort())
	ctx := context.Background()

	_, err := svc.SetReminderTime(ctx, "user-1", "sleep", "07:00")
	assert.Error(t, err)

	_, err = svc.SetReminderTime(ctx, "user-1", model.TaskWater, "25:00")
	assert.Error(t, err)
}

func TestRemoveCustomItem(t *testing.T) {
	port := newFakePort()
	svc := newTestService(t, port)
	ctx := context.Background()

	added, err := svc.AddCustomItem(ctx, "user-1", model.CustomItem{
		Title: "Walk", Date: "2024-03-01", Time: "18:00", Repeat: model.RepeatDaily,
	})
	require.NoError(t, err)
	itemID := added.State.CustomItems[0].ID
	_, ok := port.pending[planner.NotificationID("daily-custom-"+itemID)]
	require.True(t, ok)

	result, err := svc.RemoveCustomItem(ctx, "user-1", itemID)
	require.NoError(t, err)
	assert.Empty(t, result.State.CustomItems)
	_, ok = port.pending[planner.NotificationID("daily-custom-"+itemID)]
	assert.False(t, ok, "removing the item must drop its reminder")

	_, err = svc.RemoveCustomItem(ctx, "user-1", "missing")
	assert.Error(t, err)
}

func TestDayProjectsEntries(t *testing.T) {
	svc := newTestService(t, newFakePort())
	entries, err := svc.Day(context.Background(), "user-1", "2024-03-10")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflow/model"
)

// stubPort records scheduler calls and mimics a device's pending set:
// Schedule adds descriptors, Cancel removes them by id.
type stubPort struct {
	permission   PermissionState
	afterRequest PermissionState
	pendingErr   error
	cancelErr    error
	scheduleErr  error
	channelErr   error

	pending       map[int]Notification
	channels      []Channel
	cancelCalls   [][]int
	scheduleCalls [][]Notification
	requested     bool
}

func newStubPort() *stubPort {
	return &stubPort{
		permission:   PermissionGranted,
		afterRequest: PermissionGranted,
		pending:      make(map[int]Notification),
	}
}

func (p *stubPort) CheckPermissions(ctx context.Context) (PermissionState, error) {
	return p.permission, nil
}

func (p *stubPort) RequestPermissions(ctx context.Context) (PermissionState, error) {
	p.requested = true
	return p.afterRequest, nil
}

func (p *stubPort) CreateChannel(ctx context.Context, ch Channel) error {
	p.channels = append(p.channels, ch)
	return p.channelErr
}

func (p *stubPort) Pending(ctx context.Context) ([]Notification, error) {
	if p.pendingErr != nil {
		return nil, p.pendingErr
	}
	out := make([]Notification, 0, len(p.pending))
	for _, n := range p.pending {
		out = append(out, n)
	}
	return out, nil
}

func (p *stubPort) Cancel(ctx context.Context, ids []int) error {
	p.cancelCalls = append(p.cancelCalls, ids)
	if p.cancelErr != nil {
		return p.cancelErr
	}
	for _, id := range ids {
		delete(p.pending, id)
	}
	return nil
}

func (p *stubPort) Schedule(ctx context.Context, notifications []Notification) error {
	p.scheduleCalls = append(p.scheduleCalls, notifications)
	if p.scheduleErr != nil {
		return p.scheduleErr
	}
	for _, n := range notifications {
		p.pending[n.ID] = n
	}
	return nil
}

func (p *stubPort) pendingIDs() map[int]bool {
	out := make(map[int]bool, len(p.pending))
	for id := range p.pending {
		out[id] = true
	}
	return out
}

// exampleState is the worked example from the planner's reference
// scenario: water overridden to 07:00, one one-time custom item.
func exampleState() model.PlannerState {
	return model.PlannerState{
		RemindersEnabled: true,
		ReminderTimes:    map[model.RequiredTask]string{model.TaskWater: "07:00"},
		CustomItems: []model.CustomItem{
			{ID: "c1", Title: "Call mom", Date: "2024-03-10", Time: "09:00", Repeat: model.RepeatOnce},
		},
	}
}

func exampleReference() time.Time {
	return time.Date(2024, 3, 10, 6, 0, 0, 0, time.Local)
}

func findByID(notifications []Notification, id int) (Notification, bool) {
	for _, n := range notifications {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

func TestBuildDescriptorsWorkedExample(t *testing.T) {
	got := BuildDescriptors(exampleState(), exampleReference())

	// Base repeating descriptor for water, anchored at the override.
	base, ok := findByID(got, NotificationID("daily-water"))
	require.True(t, ok, "missing base water descriptor")
	require.NotNil(t, base.Schedule.On)
	assert.True(t, base.Schedule.Repeats)
	assert.Equal(t, ClockTime{Hour: 7, Minute: 0}, *base.Schedule.On)
	assert.Equal(t, "daily-base", base.Extra.Loop)
	assert.True(t, base.Extra.Required)

	// Water follow-ups for the reference day at 07:10..08:00.
	wantMinutes := []int{10, 20, 30, 45, 60}
	for idx, minutes := range wantMinutes {
		key := fmt.Sprintf("2024-03-10-required-water-followup-%d", idx)
		n, ok := findByID(got, NotificationID(key))
		require.True(t, ok, "missing follow-up %d", idx)
		require.NotNil(t, n.Schedule.At)
		want := time.Date(2024, 3, 10, 7, minutes, 0, 0, time.Local)
		assert.Equal(t, want, *n.Schedule.At)
		assert.Equal(t, "follow-up", n.Extra.Loop)
		assert.Equal(t, idx, n.Extra.ReminderIndex)
		assert.Equal(t, "2024-03-10", n.Extra.DateKey)
	}

	// One-shot for the custom item at 09:00.
	custom, ok := findByID(got, NotificationID("2024-03-10-custom-c1"))
	require.True(t, ok, "missing custom one-shot")
	require.NotNil(t, custom.Schedule.At)
	assert.Equal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local), *custom.Schedule.At)
	assert.False(t, custom.Extra.Required)

	// 3 bases + 5 days of follow-ups (5 water + 3 exercise + 3
	// meditation per day) + 1 custom one-shot.
	assert.Len(t, got, 3+5*11+1)

	for _, n := range got {
		assert.Equal(t, KindPlanner, n.Extra.Kind)
		assert.Equal(t, BaseChannelID, n.ChannelID)
	}
}

func TestBuildDescriptorsDeterministic(t *testing.T) {
	state := exampleState()
	ref := exampleReference()
	assert.Equal(t, BuildDescriptors(state, ref), BuildDescriptors(state, ref))
}

func TestCompletedTaskSuppressesFollowUpsForThatDayOnly(t *testing.T) {
	state := exampleState().WithCompletion("2024-03-10", "required-water", true)
	got := BuildDescriptors(state, exampleReference())

	// The repeating base descriptor is not tied to a single day and
	// stays; only the day's follow-ups disappear.
	_, ok := findByID(got, NotificationID("daily-water"))
	assert.True(t, ok)

	for idx := 0; idx < 5; idx++ {
		key := fmt.Sprintf("2024-03-10-required-water-followup-%d", idx)
		_, ok := findByID(got, NotificationID(key))
		assert.False(t, ok, "follow-up %d should be suppressed", idx)
	}

	// The next day is unaffected.
	_, ok = findByID(got, NotificationID("2024-03-11-required-water-followup-0"))
	assert.True(t, ok)
}

func TestPastDueBaseSuppressesWholeDay(t *testing.T) {
	// At 08:00 every required base time for the day has passed, so the
	// reference day contributes no follow-ups at all, not even offsets
	// that would land in the future.
	ref := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	got := BuildDescriptors(exampleState(), ref)

	for _, task := range model.RequiredTasks {
		for idx := 0; idx < 5; idx++ {
			key := fmt.Sprintf("2024-03-10-required-%s-followup-%d", task, idx)
			_, ok := findByID(got, NotificationID(key))
			assert.False(t, ok, "unexpected follow-up for %s", task)
		}
	}

	_, ok := findByID(got, NotificationID("2024-03-11-required-water-followup-0"))
	assert.True(t, ok)
}

func TestPastDueCustomItemNotEmitted(t *testing.T) {
	ref := time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)
	got := BuildDescriptors(exampleState(), ref)

	_, ok := findByID(got, NotificationID("2024-03-10-custom-c1"))
	assert.False(t, ok)
}

func TestCompletedCustomItemNotEmitted(t *testing.T) {
	state := exampleState().WithCompletion("2024-03-10", "c1", true)
	got := BuildDescriptors(state, exampleReference())

	_, ok := findByID(got, NotificationID("2024-03-10-custom-c1"))
	assert.False(t, ok)
}

func TestDailyCustomItemBecomesSingleRepeatingDescriptor(t *testing.T) {
	state := model.PlannerState{
		RemindersEnabled: true,
		CustomItems: []model.CustomItem{
			{ID: "walk", Title: "Evening walk", Date: "2024-03-01", Time: "18:30", Repeat: model.RepeatDaily},
		},
	}
	got := BuildDescriptors(state, exampleReference())

	n, ok := findByID(got, NotificationID("daily-custom-walk"))
	require.True(t, ok)
	require.NotNil(t, n.Schedule.On)
	assert.True(t, n.Schedule.Repeats)
	assert.Equal(t, ClockTime{Hour: 18, Minute: 30}, *n.Schedule.On)

	// No per-day one-shots for a recurring concept.
	for offset := 0; offset < LookaheadDays; offset++ {
		day := ShiftDateKey("2024-03-10", offset)
		_, ok := findByID(got, NotificationID(day+"-custom-walk"))
		assert.False(t, ok, "unexpected one-shot on %s", day)
	}
}

func TestBuildDescriptorsSkipsMalformedItems(t *testing.T) {
	state := model.PlannerState{
		RemindersEnabled: true,
		CustomItems: []model.CustomItem{
			{ID: "bad", Title: "Broken", Date: "2024-03-10", Time: "sometime", Repeat: model.RepeatOnce},
			{ID: "ok", Title: "Fine", Date: "2024-03-10", Time: "11:00", Repeat: model.RepeatOnce},
		},
	}
	got := BuildDescriptors(state, exampleReference())

	_, ok := findByID(got, NotificationID("2024-03-10-custom-bad"))
	assert.False(t, ok)
	_, ok = findByID(got, NotificationID("2024-03-10-custom-ok"))
	assert.True(t, ok)
}

func TestScheduleRemindersIdempotent(t *testing.T) {
	port := newStubPort()
	s := NewScheduler(port)
	ctx := context.Background()

	require.NoError(t, s.ScheduleReminders(ctx, exampleState(), exampleReference()))
	once := port.pendingIDs()
	require.NotEmpty(t, once)

	require.NoError(t, s.ScheduleReminders(ctx, exampleState(), exampleReference()))
	assert.Equal(t, once, port.pendingIDs())
}

func TestScheduleRemindersCancelsOnlyOwnedNotifications(t *testing.T) {
	port := newStubPort()
	stale := Notification{ID: 42, Extra: Extra{Kind: KindPlanner, TaskID: "required-water"}}
	foreign := Notification{ID: 99, Extra: Extra{Kind: "chat"}}
	port.pending[stale.ID] = stale
	port.pending[foreign.ID] = foreign

	s := NewScheduler(port)
	require.NoError(t, s.ScheduleReminders(context.Background(), exampleState(), exampleReference()))

	require.Len(t, port.cancelCalls, 1)
	assert.Equal(t, []int{42}, port.cancelCalls[0])
	assert.True(t, port.pendingIDs()[99], "foreign notification must survive the sweep")
}

func TestGlobalDisableClearsAndSchedulesNothing(t *testing.T) {
	port := newStubPort()
	owned := Notification{ID: 7, Extra: Extra{Kind: KindPlanner}}
	port.pending[owned.ID] = owned

	state := exampleState().WithRemindersEnabled(false)
	s := NewScheduler(port)
	require.NoError(t, s.ScheduleReminders(context.Background(), state, exampleReference()))

	assert.Empty(t, port.scheduleCalls)
	assert.Empty(t, port.pendingIDs())
}

func TestPermissionDeniedAbortsWithNoSideEffects(t *testing.T) {
	port := newStubPort()
	port.permission = PermissionPrompt
	port.afterRequest = PermissionDenied
	owned := Notification{ID: 7, Extra: Extra{Kind: KindPlanner}}
	port.pending[owned.ID] = owned

	s := NewScheduler(port)
	err := s.ScheduleReminders(context.Background(), exampleState(), exampleReference())

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.True(t, port.requested)
	assert.Empty(t, port.cancelCalls)
	assert.Empty(t, port.scheduleCalls)
	assert.True(t, port.pendingIDs()[7])
}

func TestPermissionPromptThenGrantedProceeds(t *testing.T) {
	port := newStubPort()
	port.permission = PermissionPrompt
	port.afterRequest = PermissionGranted

	s := NewScheduler(port)
	require.NoError(t, s.ScheduleReminders(context.Background(), exampleState(), exampleReference()))
	assert.True(t, port.requested)
	assert.NotEmpty(t, port.scheduleCalls)
}

func TestPendingListFailureIsNonFatal(t *testing.T) {
	port := newStubPort()
	port.pendingErr = errors.New("query failed")

	s := NewScheduler(port)
	require.NoError(t, s.ScheduleReminders(context.Background(), exampleState(), exampleReference()))
	assert.NotEmpty(t, port.scheduleCalls)
}

func TestScheduleFailurePropagates(t *testing.T) {
	port := newStubPort()
	port.scheduleErr = errors.New("device rejected batch")

	s := NewScheduler(port)
	err := s.ScheduleReminders(context.Background(), exampleState(), exampleReference())
	require.Error(t, err)
	assert.ErrorContains(t, err, "device rejected batch")
}

func TestChannelRegistrationFailureIsNonFatal(t *testing.T) {
	port := newStubPort()
	port.channelErr = errors.New("channel exists")

	s := NewScheduler(port)
	require.NoError(t, s.ScheduleReminders(context.Background(), exampleState(), exampleReference()))
	require.Len(t, port.channels, 1)
	assert.Equal(t, BaseChannelID, port.channels[0].ID)
}

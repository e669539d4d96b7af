package planner

import (
	"context"
	"time"
)

// KindPlanner marks descriptors owned by the reminder scheduler. The
// cancellation sweep only touches notifications carrying this kind, so
// other subsystems can schedule through the same port safely.
const KindPlanner = "planner"

// BaseChannelID is the notification channel all planner reminders use.
const BaseChannelID = "planner"

type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)

// ClockTime is a wall-clock trigger for repeating descriptors.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Schedule is either a one-shot instant (At set) or a daily repeating
// wall-clock trigger (On set with Repeats true). Exactly one is set.
type Schedule struct {
	At      *time.Time `json:"at,omitempty"`
	On      *ClockTime `json:"on,omitempty"`
	Repeats bool       `json:"repeats,omitempty"`
}

// Extra is the scheduler-owned metadata attached to every descriptor.
type Extra struct {
	Kind          string `json:"kind"`
	TaskID        string `json:"taskId"`
	DateKey       string `json:"dateKey,omitempty"`
	Required      bool   `json:"required"`
	Order         int    `json:"order,omitempty"`
	ReminderIndex int    `json:"reminderIndex,omitempty"`
	Loop          string `json:"loop,omitempty"`
}

// Notification is one descriptor handed to the device port. The ID is
// derived from a stable string key via NotificationID, never assigned by
// the platform.
type Notification struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Schedule  Schedule `json:"schedule"`
	ChannelID string   `json:"channelId"`
	Extra     Extra    `json:"extra"`
}

// Channel describes a notification channel to register before scheduling.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Importance  int    `json:"importance"`
}

// Port is the device notification surface the scheduler drives. All
// operations may fail; the scheduler decides per call which failures are
// fatal.
type Port interface {
	CheckPermissions(ctx context.Context) (PermissionState, error)
	RequestPermissions(ctx context.Context) (PermissionState, error)
	CreateChannel(ctx context.Context, ch Channel) error
	Pending(ctx context.Context) ([]Notification, error)
	Cancel(ctx context.Context, ids []int) error
	Schedule(ctx context.Context, notifications []Notification) error
}

package model

import "time"

type TimerKind string

const (
	TimerFocus      TimerKind = "FOCUS"
	TimerBreak      TimerKind = "BREAK"
	TimerMeditation TimerKind = "MEDITATION"
)

// TimerSession records one finished (or abandoned) timer run.
type TimerSession struct {
	SessionID      string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Kind           TimerKind `bson:"kind" json:"kind" binding:"required"`
	Label          string    `bson:"label,omitempty" json:"label,omitempty"`
	PlannedSeconds int       `bson:"planned_seconds" json:"planned_seconds"`
	ActualSeconds  int       `bson:"actual_seconds" json:"actual_seconds"`
	Completed      bool      `bson:"completed" json:"completed"`
	Date           string    `bson:"date" json:"date"`
	StartedAt      time.Time `bson:"started_at" json:"started_at"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

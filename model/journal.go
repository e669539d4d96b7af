package model

import (
	"time"
)

// JournalEntry is one day's log record in the account-backed journal.
// Date is a YYYY-MM-DD key so range queries reduce to string comparison.
type JournalEntry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Date      string    `bson:"date" json:"date"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body" binding:"required"`
	Mood      int       `bson:"mood,omitempty" json:"mood,omitempty"`
	Tags      []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

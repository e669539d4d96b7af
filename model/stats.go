package model

import "time"

type UserStats struct {
	JournalStats struct {
		Total     int            `json:"total"`
		ThisWeek  int            `json:"this_week"`
		TagCounts map[string]int `json:"tag_counts"`
	} `json:"journal_stats"`
	TimerStats struct {
		Total        int `json:"total"`
		Completed    int `json:"completed"`
		FocusSeconds int `json:"focus_seconds"`
	} `json:"timer_stats"`
	PuzzleStats struct {
		Attempted int `json:"attempted"`
		Solved    int `json:"solved"`
	} `json:"puzzle_stats"`
	ActivityStats struct {
		LastActive     time.Time `json:"last_active"`
		AccountCreated time.Time `json:"account_created"`
		TotalSessions  int       `json:"total_sessions"`
	} `json:"activity_stats"`
}

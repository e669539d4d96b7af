package dto

import (
	"zenflow/model"
	"zenflow/planner"
	"zenflow/usecase"
)

type PlannerEntryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	Required  bool   `json:"required"`
	Completed bool   `json:"completed"`
}

type PlannerDayResponse struct {
	Date    string                 `json:"date"`
	Entries []PlannerEntryResponse `json:"entries"`
}

func ToPlannerDayResponse(dateKey string, entries []planner.Entry) PlannerDayResponse {
	out := PlannerDayResponse{Date: dateKey, Entries: make([]PlannerEntryResponse, len(entries))}
	for i, entry := range entries {
		out.Entries[i] = PlannerEntryResponse{
			ID:        entry.ID,
			Title:     entry.Title,
			Time:      entry.Time,
			Required:  entry.Required,
			Completed: entry.Completed,
		}
	}
	return out
}

// PlannerSaveResponse pairs the persisted state with the reminder
// rescheduling outcome so clients can tell a clean save from one whose
// reminders could not be placed.
type PlannerSaveResponse struct {
	State     model.PlannerState `json:"state"`
	Reminders string             `json:"reminders"`
	Notice    string             `json:"notice,omitempty"`
}

func ToPlannerSaveResponse(result usecase.SaveResult) PlannerSaveResponse {
	out := PlannerSaveResponse{State: result.State, Reminders: string(result.Status)}
	switch result.Status {
	case usecase.ReschedulePermissionDenied:
		out.Notice = "reminders disabled: notification permission denied"
	case usecase.RescheduleFailed:
		out.Notice = "saved, reminder scheduling failed"
	}
	return out
}

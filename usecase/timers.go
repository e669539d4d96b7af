package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"zenflow/model"
	"zenflow/planner"
	"zenflow/repository"
	"zenflow/utils"
)

type TimerService struct {
	Repo *repository.TimerRepo
}

func NewTimerService(repo *repository.TimerRepo) *TimerService {
	return &TimerService{Repo: repo}
}

// RecordSession validates and stores a finished timer run. The date key
// is derived from the start instant so day queries stay consistent with
// the planner's date arithmetic.
func (svc *TimerService) RecordSession(ctx context.Context, session *model.TimerSession) error {
	switch session.Kind {
	case model.TimerFocus, model.TimerBreak, model.TimerMeditation:
	default:
		return fmt.Errorf("invalid timer kind %q", session.Kind)
	}
	if session.PlannedSeconds <= 0 {
		return errors.New("planned seconds must be positive")
	}
	if session.ActualSeconds < 0 {
		return errors.New("actual seconds cannot be negative")
	}
	if session.StartedAt.IsZero() {
		return errors.New("start time is required")
	}

	if session.SessionID == "" {
		session.SessionID = utils.GenerateID()
	}
	session.Date = planner.DateKey(session.StartedAt)
	session.CreatedAt = time.Now()

	if err := svc.Repo.RecordSession(ctx, session); err != nil {
		return err
	}
	utils.TimerSessionsTotal.WithLabelValues(string(session.Kind), strconv.FormatBool(session.Completed)).Inc()
	return nil
}

// DaySessions lists the sessions recorded for one date key.
func (svc *TimerService) DaySessions(ctx context.Context, userID, dateKey string) ([]*model.TimerSession, error) {
	return svc.Repo.GetSessionsForDay(ctx, userID, dateKey)
}

// DayTotals sums actual seconds per timer kind for one date key.
func (svc *TimerService) DayTotals(ctx context.Context, userID, dateKey string) (map[model.TimerKind]int, error) {
	return svc.Repo.TotalSecondsForDay(ctx, userID, dateKey)
}

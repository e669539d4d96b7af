package usecase

import (
	"context"
	"errors"
	"fmt"

	"zenflow/model"
	"zenflow/planner"
	"zenflow/repository"
	"zenflow/utils"
)

const (
	maxJournalTags   = 5
	maxTagLength     = 20
	maxJournalLength = 20000
)

type JournalService struct {
	Repo *repository.JournalRepo
}

func NewJournalService(repo *repository.JournalRepo) *JournalService {
	return &JournalService{Repo: repo}
}

// CreateEntry validates and stores a new journal entry.
func (svc *JournalService) CreateEntry(ctx context.Context, entry *model.JournalEntry) error {
	if entry.UserID == "" {
		return errors.New("user ID is required")
	}
	if entry.Body == "" {
		return errors.New("entry body is required")
	}
	if len(entry.Body) > maxJournalLength {
		return fmt.Errorf("entry body cannot exceed %d characters", maxJournalLength)
	}
	if entry.Mood < 0 || entry.Mood > 5 {
		return errors.New("mood must be between 1 and 5")
	}
	if entry.Date == "" {
		return errors.New("entry date is required")
	}
	if entry.Date != planner.DateKey(planner.ParseDateKey(entry.Date)) {
		return fmt.Errorf("invalid date key %q", entry.Date)
	}

	tags, err := validateTags(entry.Tags)
	if err != nil {
		return err
	}
	entry.Tags = tags

	if entry.ID == "" {
		entry.ID = utils.GenerateID()
	}

	if err := svc.Repo.CreateEntry(ctx, entry); err != nil {
		return err
	}
	utils.TrackJournalOperation("create")
	return nil
}

// GetEntries lists a user's entries, optionally bounded by date keys.
func (svc *JournalService) GetEntries(ctx context.Context, userID, fromDate, toDate string) ([]*model.JournalEntry, error) {
	return svc.Repo.GetUserEntries(ctx, userID, fromDate, toDate)
}

// GetEntry fetches one entry owned by the user.
func (svc *JournalService) GetEntry(ctx context.Context, entryID, userID string) (*model.JournalEntry, error) {
	return svc.Repo.GetEntry(ctx, entryID, userID)
}

// UpdateEntry validates and stores changes to an entry.
func (svc *JournalService) UpdateEntry(ctx context.Context, entryID, userID string, updates *model.JournalEntry) (*model.JournalEntry, error) {
	if updates.Body == "" {
		return nil, errors.New("entry body is required")
	}
	if updates.Mood < 0 || updates.Mood > 5 {
		return nil, errors.New("mood must be between 1 and 5")
	}

	tags, err := validateTags(updates.Tags)
	if err != nil {
		return nil, err
	}
	updates.Tags = tags

	if err := svc.Repo.UpdateEntry(ctx, entryID, userID, updates); err != nil {
		return nil, err
	}
	utils.TrackJournalOperation("update")
	return svc.Repo.GetEntry(ctx, entryID, userID)
}

// DeleteEntry removes one entry owned by the user.
func (svc *JournalService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	if err := svc.Repo.DeleteEntry(ctx, entryID, userID); err != nil {
		return err
	}
	utils.TrackJournalOperation("delete")
	return nil
}

func validateTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	var valid []string
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if len(tag) > maxTagLength {
			return nil, fmt.Errorf("tag cannot exceed %d characters", maxTagLength)
		}
		valid = append(valid, tag)
	}
	if len(valid) > maxJournalTags {
		return nil, fmt.Errorf("cannot exceed %d tags per entry", maxJournalTags)
	}
	return valid, nil
}

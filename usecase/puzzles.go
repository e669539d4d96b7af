package usecase

import (
	"context"
	"errors"
	"time"

	"zenflow/model"
	"zenflow/repository"
	"zenflow/utils"
)

// puzzleCatalog is the static puzzle data served to clients. Solving
// logic is entirely client-side; the server only stores progress.
var puzzleCatalog = []model.Puzzle{
	{PuzzleID: "riddle-001", Kind: model.PuzzleRiddle, Prompt: "What has keys but opens no locks?", Difficulty: 1},
	{PuzzleID: "riddle-002", Kind: model.PuzzleRiddle, Prompt: "The more you take, the more you leave behind. What am I?", Difficulty: 2},
	{PuzzleID: "seq-001", Kind: model.PuzzleSequence, Prompt: "2, 4, 8, 16, ?", Options: []string{"24", "30", "32", "64"}, Difficulty: 1},
	{PuzzleID: "seq-002", Kind: model.PuzzleSequence, Prompt: "1, 1, 2, 3, 5, 8, ?", Options: []string{"11", "12", "13", "21"}, Difficulty: 2},
	{PuzzleID: "logic-001", Kind: model.PuzzleLogic, Prompt: "A farmer must ferry a wolf, a goat and a cabbage across a river. The boat holds one item. How many crossings at minimum?", Options: []string{"5", "7", "9", "11"}, Difficulty: 3},
	{PuzzleID: "logic-002", Kind: model.PuzzleLogic, Prompt: "Three switches control three lamps in another room. You may enter that room once. How many switch toggles do you need to identify all three?", Options: []string{"1", "2", "3", "4"}, Difficulty: 3},
}

type PuzzleService struct {
	Repo *repository.PuzzleRepo
}

func NewPuzzleService(repo *repository.PuzzleRepo) *PuzzleService {
	return &PuzzleService{Repo: repo}
}

// Catalog returns the static puzzle list.
func (svc *PuzzleService) Catalog() []model.Puzzle {
	out := make([]model.Puzzle, len(puzzleCatalog))
	copy(out, puzzleCatalog)
	return out
}

// RecordProgress stores a user's attempt on a known puzzle.
func (svc *PuzzleService) RecordProgress(ctx context.Context, progress *model.PuzzleProgress) error {
	known := false
	for _, p := range puzzleCatalog {
		if p.PuzzleID == progress.PuzzleID {
			known = true
			break
		}
	}
	if !known {
		return errors.New("unknown puzzle")
	}
	if progress.ElapsedSeconds < 0 {
		return errors.New("elapsed seconds cannot be negative")
	}

	if progress.ID == "" {
		progress.ID = utils.GenerateID()
	}
	if progress.AttemptedAt.IsZero() {
		progress.AttemptedAt = time.Now()
	}
	return svc.Repo.RecordProgress(ctx, progress)
}

// UserProgress lists the user's progress records.
func (svc *PuzzleService) UserProgress(ctx context.Context, userID string) ([]*model.PuzzleProgress, error) {
	return svc.Repo.GetUserProgress(ctx, userID)
}

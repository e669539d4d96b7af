package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"zenflow/model"
)

// FileStateStore is the JSON-file fallback for planner preferences, used
// when the service runs without MongoDB (local development, tests). One
// file per user under the root directory, guarded by a single lock since
// callers already serialize per-user access.
type FileStateStore struct {
	root string
	mu   sync.Mutex
}

func NewFileStateStore(root string) (*FileStateStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating planner state dir: %w", err)
	}
	return &FileStateStore{root: root}, nil
}

func (s *FileStateStore) path(userID string) string {
	return filepath.Join(s.root, userID+".json")
}

func (s *FileStateStore) GetState(ctx context.Context, userID string) (model.PlannerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		state := model.DefaultPlannerState()
		if err := s.write(userID, state); err != nil {
			return model.PlannerState{}, err
		}
		return state, nil
	}
	if err != nil {
		return model.PlannerState{}, err
	}

	var state model.PlannerState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.PlannerState{}, fmt.Errorf("decoding planner state for %s: %w", userID, err)
	}
	return state, nil
}

func (s *FileStateStore) SaveState(ctx context.Context, userID string, state model.PlannerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(userID, state)
}

func (s *FileStateStore) DeleteState(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(userID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// write renames a temp file into place so a crash mid-write never leaves
// a truncated state file.
func (s *FileStateStore) write(userID string, state model.PlannerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(userID))
}

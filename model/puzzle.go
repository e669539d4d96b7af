package model

import "time"

type PuzzleKind string

const (
	PuzzleRiddle   PuzzleKind = "riddle"
	PuzzleSequence PuzzleKind = "sequence"
	PuzzleLogic    PuzzleKind = "logic"
)

// Puzzle is a static catalog entry. The server only stores and serves
// puzzle data; solving logic lives entirely in the client.
type Puzzle struct {
	PuzzleID   string     `json:"id"`
	Kind       PuzzleKind `json:"kind"`
	Prompt     string     `json:"prompt"`
	Options    []string   `json:"options,omitempty"`
	Difficulty int        `json:"difficulty"`
}

// PuzzleProgress is a per-user record of an attempted puzzle.
type PuzzleProgress struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	PuzzleID       string    `bson:"puzzle_id" json:"puzzle_id" binding:"required"`
	Solved         bool      `bson:"solved" json:"solved"`
	ElapsedSeconds int       `bson:"elapsed_seconds" json:"elapsed_seconds"`
	AttemptedAt    time.Time `bson:"attempted_at" json:"attempted_at"`
}

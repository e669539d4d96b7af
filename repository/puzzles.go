package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zenflow/model"
	"zenflow/utils"
)

type PuzzleRepo struct {
	MongoCollection *mongo.Collection
}

func GetPuzzleRepo(client *mongo.Client) *PuzzleRepo {
	return &PuzzleRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "zenflow")).Collection("puzzle_progress"),
	}
}

// RecordProgress upserts the user's progress for one puzzle. A later
// attempt replaces an earlier one; a solved flag never regresses.
func (r *PuzzleRepo) RecordProgress(ctx context.Context, progress *model.PuzzleProgress) error {
	timer := utils.TrackDBOperation("update", "puzzle_progress")
	defer timer.ObserveDuration()

	if progress.UserID == "" {
		return errors.New("user ID is required")
	}

	filter := bson.M{"user_id": progress.UserID, "puzzle_id": progress.PuzzleID}
	update := bson.M{
		"$set": bson.M{
			"elapsed_seconds": progress.ElapsedSeconds,
			"attempted_at":    progress.AttemptedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       progress.ID,
			"user_id":   progress.UserID,
			"puzzle_id": progress.PuzzleID,
		},
	}
	if progress.Solved {
		update["$set"].(bson.M)["solved"] = true
	}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "puzzle_progress_failed")
	}
	return err
}

// GetUserProgress lists all progress records for the user
func (r *PuzzleRepo) GetUserProgress(ctx context.Context, userID string) ([]*model.PuzzleProgress, error) {
	timer := utils.TrackDBOperation("find", "puzzle_progress")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var progress []*model.PuzzleProgress
	if err = cursor.All(ctx, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CountProgress returns attempted and solved counts
func (r *PuzzleRepo) CountProgress(ctx context.Context, userID string) (attempted, solved int, err error) {
	all, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, 0, err
	}
	done, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID, "solved": true})
	if err != nil {
		return 0, 0, err
	}
	return int(all), int(done), nil
}

// DeleteUserProgress removes all puzzle records for an account
func (r *PuzzleRepo) DeleteUserProgress(ctx context.Context, userID string) error {
	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

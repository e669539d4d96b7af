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

type TimerRepo struct {
	MongoCollection *mongo.Collection
}

func GetTimerRepo(client *mongo.Client) *TimerRepo {
	return &TimerRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "zenflow")).Collection("timer_sessions"),
	}
}

// RecordSession stores one finished timer run
func (r *TimerRepo) RecordSession(ctx context.Context, session *model.TimerSession) error {
	timer := utils.TrackDBOperation("insert", "timer_sessions")
	defer timer.ObserveDuration()

	if session.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, session)
	if err != nil {
		utils.TrackError("database", "timer_record_failed")
		return err
	}
	return nil
}

// GetSessionsForDay lists the user's timer sessions for one date key,
// oldest first.
func (r *TimerRepo) GetSessionsForDay(ctx context.Context, userID, dateKey string) ([]*model.TimerSession, error) {
	timer := utils.TrackDBOperation("find", "timer_sessions")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "date": dateKey}, opts)
	if err != nil {
		utils.TrackError("database", "timer_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.TimerSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// TotalSecondsForDay sums actual seconds per timer kind for one day.
func (r *TimerRepo) TotalSecondsForDay(ctx context.Context, userID, dateKey string) (map[model.TimerKind]int, error) {
	sessions, err := r.GetSessionsForDay(ctx, userID, dateKey)
	if err != nil {
		return nil, err
	}
	totals := make(map[model.TimerKind]int)
	for _, s := range sessions {
		totals[s.Kind] += s.ActualSeconds
	}
	return totals, nil
}

// TotalFocusSeconds sums actual seconds across all FOCUS sessions.
func (r *TimerRepo) TotalFocusSeconds(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("aggregate", "timer_sessions")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "kind": model.TimerFocus}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "seconds": bson.M{"$sum": "$actual_seconds"}}}},
	}
	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Seconds int `bson:"seconds"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Seconds, nil
}

// CountSessions returns total and completed session counts
func (r *TimerRepo) CountSessions(ctx context.Context, userID string) (total, completed int, err error) {
	all, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, 0, err
	}
	done, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID, "completed": true})
	if err != nil {
		return 0, 0, err
	}
	return int(all), int(done), nil
}

// DeleteUserSessions removes all timer records for an account
func (r *TimerRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zenflow/model"
	"zenflow/services"
	"zenflow/utils"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	return &SessionRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "zenflow")).Collection("sessions"),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return err
	}
	utils.ActiveSessions.Inc()

	// Write-through to the Redis cache; a cache miss is recoverable so
	// failures only log.
	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			log.Printf("Failed to cache new session: %v", err)
		}
	}
	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			return session, nil
		}
	}

	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New("session not found")
	}
	if err != nil {
		return nil, err
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(&session); err != nil {
			log.Printf("Failed to cache session: %v", err)
		}
	}
	return &session, nil
}

func (r *SessionRepo) UpdateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"session_id": session.SessionID}, session)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			log.Printf("Failed to refresh cached session: %v", err)
		}
	}
	return nil
}

// EndSession marks a session inactive without deleting its audit trail.
func (r *SessionRepo) EndSession(ctx context.Context, sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("session not found")
	}
	utils.ActiveSessions.Dec()

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(sessionID); err != nil {
			log.Printf("Failed to evict cached session: %v", err)
		}
	}
	return nil
}

// EndAllUserSessions deactivates every active session of the user.
func (r *SessionRepo) EndAllUserSessions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	utils.ActiveSessions.Sub(float64(result.ModifiedCount))

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.InvalidateUserSessions(userID); err != nil {
			log.Printf("Failed to invalidate cached sessions: %v", err)
		}
	}
	return nil
}

// DeleteUserSessions removes all of the user's session documents; used
// when the account itself is deleted.
func (r *SessionRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "sessions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.InvalidateUserSessions(userID); err != nil {
			log.Printf("Failed to invalidate cached sessions: %v", err)
		}
	}
	return nil
}

func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "last_activity_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "is_active": true, "expires_at": bson.M{"$gt": time.Now()}},
		opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "sessions")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "is_active": true, "expires_at": bson.M{"$gt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// EndLeastActiveSession evicts the session with the oldest activity so a
// new login can take its slot.
func (r *SessionRepo) EndLeastActiveSession(ctx context.Context, userID string) error {
	opts := options.FindOne().SetSort(bson.D{{Key: "last_activity_at", Value: 1}})

	var session model.Session
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "is_active": true}, opts).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}
	return r.EndSession(ctx, session.SessionID)
}

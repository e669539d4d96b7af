package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	journalIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("user_journal_date"),
		},
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "body", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetName("journal_text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "body", Value: 5},
					{Key: "tags", Value: 3},
				}),
		},
	}

	timerIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "started_at", Value: 1},
			},
			Options: options.Index().SetName("user_timer_day"),
		},
	}

	puzzleIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "puzzle_id", Value: 1},
			},
			Options: options.Index().SetName("user_puzzle").SetUnique(true),
		},
	}

	metaIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("meta_user").SetUnique(true),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "last_activity_at", Value: -1},
			},
			Options: options.Index().SetName("user_active_sessions"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("session_ttl").SetExpireAfterSeconds(0),
		},
	}

	for collection, indexes := range map[string][]mongo.IndexModel{
		"journal_entries": journalIndexes,
		"timer_sessions":  timerIndexes,
		"puzzle_progress": puzzleIndexes,
		"account_meta":    metaIndexes,
		"sessions":        sessionIndexes,
	} {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}

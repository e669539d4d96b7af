package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zenflow/model"
	"zenflow/utils"
)

type JournalRepo struct {
	MongoCollection *mongo.Collection
}

func GetJournalRepo(client *mongo.Client) *JournalRepo {
	return &JournalRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "zenflow")).Collection("journal_entries"),
	}
}

// CreateEntry inserts a new journal entry
func (r *JournalRepo) CreateEntry(ctx context.Context, entry *model.JournalEntry) error {
	timer := utils.TrackDBOperation("insert", "journal_entries")
	defer timer.ObserveDuration()

	if entry.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		utils.TrackError("database", "journal_creation_failed")
		return err
	}
	return nil
}

// GetUserEntries retrieves a user's entries, newest first. Either bound
// of the date-key range may be empty.
func (r *JournalRepo) GetUserEntries(ctx context.Context, userID, fromDate, toDate string) ([]*model.JournalEntry, error) {
	timer := utils.TrackDBOperation("find", "journal_entries")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	dateRange := bson.M{}
	if fromDate != "" {
		dateRange["$gte"] = fromDate
	}
	if toDate != "" {
		dateRange["$lte"] = toDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "journal_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.JournalEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry retrieves a single entry owned by the user
func (r *JournalRepo) GetEntry(ctx context.Context, entryID, userID string) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": entryID, "user_id": userID}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New("journal entry not found")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry overwrites the mutable fields of an entry
func (r *JournalRepo) UpdateEntry(ctx context.Context, entryID, userID string, updates *model.JournalEntry) error {
	timer := utils.TrackDBOperation("update", "journal_entries")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": entryID, "user_id": userID},
		bson.M{"$set": bson.M{
			"title":      updates.Title,
			"body":       updates.Body,
			"mood":       updates.Mood,
			"tags":       updates.Tags,
			"updated_at": time.Now(),
		}})
	if err != nil {
		utils.TrackError("database", "journal_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("journal entry not found")
	}
	return nil
}

// DeleteEntry removes an entry
func (r *JournalRepo) DeleteEntry(ctx context.Context, entryID, userID string) error {
	timer := utils.TrackDBOperation("delete", "journal_entries")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": entryID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "journal_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("journal entry not found")
	}
	return nil
}

// DeleteUserEntries removes all entries for an account
func (r *JournalRepo) DeleteUserEntries(ctx context.Context, userID string) error {
	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// CountUserEntries returns the user's total entry count
func (r *JournalRepo) CountUserEntries(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

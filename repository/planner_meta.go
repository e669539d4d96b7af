package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zenflow/model"
	"zenflow/utils"
)

// PlannerStateStore persists planner preferences per account. The first
// read of an account returns (and stores) the default state; writes
// replace the whole document, matching the model's immutable-update
// style. Two implementations exist: the Mongo-backed store below and the
// JSON FileStateStore fallback for running without a document store.
type PlannerStateStore interface {
	GetState(ctx context.Context, userID string) (model.PlannerState, error)
	SaveState(ctx context.Context, userID string, state model.PlannerState) error
	DeleteState(ctx context.Context, userID string) error
}

type accountMetaDoc struct {
	UserID    string             `bson:"user_id"`
	Planner   model.PlannerState `bson:"planner"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type AccountMetaRepo struct {
	MongoCollection *mongo.Collection
}

func GetAccountMetaRepo(client *mongo.Client) *AccountMetaRepo {
	return &AccountMetaRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "zenflow")).Collection("account_meta"),
	}
}

// GetState loads the user's planner state, creating the default document
// on first read.
func (r *AccountMetaRepo) GetState(ctx context.Context, userID string) (model.PlannerState, error) {
	timer := utils.TrackDBOperation("find", "account_meta")
	defer timer.ObserveDuration()

	var doc accountMetaDoc
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		state := model.DefaultPlannerState()
		if err := r.SaveState(ctx, userID, state); err != nil {
			return model.PlannerState{}, err
		}
		return state, nil
	}
	if err != nil {
		utils.TrackError("database", "planner_state_fetch_failed")
		return model.PlannerState{}, err
	}
	return doc.Planner, nil
}

// SaveState upserts the user's planner state document.
func (r *AccountMetaRepo) SaveState(ctx context.Context, userID string, state model.PlannerState) error {
	timer := utils.TrackDBOperation("update", "account_meta")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"user_id": userID},
		accountMetaDoc{UserID: userID, Planner: state, UpdatedAt: time.Now()},
		options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "planner_state_save_failed")
	}
	return err
}

// DeleteState removes the account meta document.
func (r *AccountMetaRepo) DeleteState(ctx context.Context, userID string) error {
	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

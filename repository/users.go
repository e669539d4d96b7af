package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"zenflow/model"
	"zenflow/utils"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "zenflow")).Collection("users"),
	}
}

// AddUser inserts a new account document
func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		utils.TrackError("database", "user_creation_failed")
		return err
	}
	return nil
}

// FindUserByUsername returns the account with the given username, or nil
// when no such account exists.
func (r *UserRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUser returns the account with the given user id, or nil.
func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameOrEmailTaken reports whether either identifier is in use.
func (r *UserRepo) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{{"username": username}, {"email": email}},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateUserPassword replaces the stored password hash
func (r *UserRepo) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	return r.updateOne(ctx, userID, bson.M{"password": hashedPassword})
}

// UpdateUserEmail replaces the account email
func (r *UserRepo) UpdateUserEmail(ctx context.Context, userID, email string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	return r.updateOne(ctx, userID, bson.M{"email": email})
}

// DeleteUserByID removes the account document
func (r *UserRepo) DeleteUserByID(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "user_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// Enable2FAWithRecoveryCodes stores the TOTP secret and hashed recovery
// codes and flips the enabled flag in one update.
func (r *UserRepo) Enable2FAWithRecoveryCodes(ctx context.Context, userID, secret string, recoveryCodes []string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	return r.updateOne(ctx, userID, bson.M{
		"two_factor_secret":  secret,
		"two_factor_enabled": true,
		"recovery_codes":     recoveryCodes,
	})
}

// UpdateRecoveryCodes replaces the remaining hashed recovery codes
func (r *UserRepo) UpdateRecoveryCodes(ctx context.Context, userID string, codes []string) error {
	return r.updateOne(ctx, userID, bson.M{"recovery_codes": codes})
}

// Disable2FA clears the TOTP secret and recovery codes
func (r *UserRepo) Disable2FA(ctx context.Context, userID string) error {
	return r.updateOne(ctx, userID, bson.M{
		"two_factor_secret":  "",
		"two_factor_enabled": false,
		"recovery_codes":     nil,
	})
}

func (r *UserRepo) updateOne(ctx context.Context, userID string, set bson.M) error {
	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "user_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

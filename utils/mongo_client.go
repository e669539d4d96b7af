package utils

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoClient is the shared MongoDB client for all repositories. It is
// set once at startup from the database config.
var MongoClient *mongo.Client

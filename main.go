package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zenflow/config"
	"zenflow/planner"
	"zenflow/repository"
	"zenflow/services"
	"zenflow/utils"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	client, err := dbConfig.Connect(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	utils.MongoClient = client

	// Redis is optional: without it sessions hit Mongo directly and
	// token blacklisting is a no-op.
	if redisURL := utils.GetEnvAsString("REDIS_URL", ""); redisURL != "" {
		cache, err := services.NewSessionCache(redisURL, utils.GetEnvAsDuration("SESSION_CACHE_TTL", 15*time.Minute))
		if err != nil {
			log.Fatalf("Failed to connect session cache: %v", err)
		}
		services.GlobalSessionCache = cache
		defer cache.Close()

		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Fatalf("Failed to connect token blacklist: %v", err)
		}
		services.TokenBlacklist = blacklist
		defer blacklist.Close()
	}

	db := client.Database(dbConfig.DatabaseName)
	if err := repository.SetupIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Planner preferences live on the account meta collection; a
	// directory of JSON files serves instead for single-node setups.
	var plannerStore repository.PlannerStateStore
	if dir := utils.GetEnvAsString("PLANNER_STATE_DIR", ""); dir != "" {
		store, err := repository.NewFileStateStore(dir)
		if err != nil {
			log.Fatalf("Failed to open planner state dir: %v", err)
		}
		plannerStore = store
	} else {
		plannerStore = repository.GetAccountMetaRepo(utils.MongoClient)
	}

	ports := planner.NewPortRegistry(func(userID string, n planner.Notification) {
		log.Printf("reminder for %s: %s / %s", userID, n.Title, n.Body)
	})
	defer ports.Stop()

	router := setupRouter(plannerStore, ports)

	srv := &http.Server{
		Addr:    ":" + utils.GetEnvAsString("PORT", "8080"),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := utils.MongoClient.Disconnect(ctx); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
	log.Println("Server shutdown complete")
}

package environment

import (
	"os"
	"uniscope/analytics"
	"uniscope/cache"
	"uniscope/client"
	"uniscope/database"
	"uniscope/models"
	"uniscope/summarize"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// Environment is used for dependency-injection (package de-coupling)
type Environment struct {
	Requests    *client.Registry
	Tracker     *analytics.Tracker
	Cache       *cache.Store
	Summarizer  *summarize.Client
	UserModel   models.UserModel
	ReviewModel models.ReviewModel
	UnitModel   models.UnitModel
}

// newEnv operates as the constructor to initialize the collection references (private)
func newEnv(mongoClient *mongo.Client, redisClient *redis.Client) *Environment {
	env := &Environment{}

	// in-process registry of recent client requests (refresh detection)
	env.Requests = new(client.Registry)
	env.Requests.Initialize()

	// prepare analytics gathering (unit page visits)
	// always create the object so no further checking is needed in the models
	env.Tracker = new(analytics.Tracker)
	if os.Getenv("USE_ANALYTICS") == "YES" {
		env.Tracker.SetConnections(database.GetInfluxConnection())
		env.Tracker.VisitorAPI.WriteAPI = (*database.GetInfluxConnection()).WriteAPIBlocking(
			os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_VISITORS_BUCKET"))
		env.Tracker.VisitorAPI.QueryAPI = (*database.GetInfluxConnection()).QueryAPI(os.Getenv("ANALYTICS_ORG"))
	}
	env.Tracker.Requests = env.Requests

	// read-side cache (derived lists, invalidated on submissions)
	env.Cache = &cache.Store{Client: redisClient}

	// external text-generation service
	env.Summarizer = summarize.NewClient()

	env.UserModel.Client = mongoClient
	env.UserModel.Collection = mongoClient.Database(os.Getenv("DB_NAME")).Collection("users") // ToDO: Const

	env.ReviewModel.Client = mongoClient
	env.ReviewModel.Collection = mongoClient.Database(os.Getenv("DB_NAME")).Collection("reviews") // ToDO: Const
	// Invalidation in's Review Model "injecten" (kein package-bezug models -> cache)
	env.ReviewModel.Invalidate = env.Cache.InvalidateReviews

	env.UnitModel.Collection = mongoClient.Database(os.Getenv("DB_NAME")).Collection("units") // ToDO: Const

	return env
}

// Env is the singleton registry
var Env *Environment

// Initialize injects the database connections to the models
// (do not confuse with package init)
func Initialize() {
	Env = newEnv(database.GetConnection(), database.GetRedisConnection())
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB bundles the two stores the service runs on: Postgres for the user
// directory and MongoDB for the social aggregates.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
}

// InitDB loads environment configuration and connects to both databases
func InitDB() (*DB, *Config, error) {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	cfg := Load()

	if cfg.PostgresURL == "" {
		return nil, nil, fmt.Errorf("POSTGRES_CONN_STR is not set")
	}
	if cfg.MongoURI == "" {
		return nil, nil, fmt.Errorf("MONGO_URI is not set")
	}

	pg, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &DB{Postgres: pg, Mongo: client}, cfg, nil
}

// CloseDB disconnects both databases
func (db *DB) CloseDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Mongo.Disconnect(ctx); err != nil {
		return err
	}

	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

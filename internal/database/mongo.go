package database

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Mongo holds the document store client and the movies collection.
type Mongo struct {
	client       *mongo.Client
	movies       *mongo.Collection
	queryTimeout time.Duration
}

func ConnectMongo(cfg *config.Config, log *logrus.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb failed: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"database":   cfg.Database.Mongo.Database,
		"collection": cfg.Database.Mongo.Collection,
	}).Info("MongoDB connected")

	return &Mongo{
		client:       client,
		movies:       client.Database(cfg.Database.Mongo.Database).Collection(cfg.Database.Mongo.Collection),
		queryTimeout: cfg.Database.QueryTimeout,
	}, nil
}

func (m *Mongo) Movies() *mongo.Collection {
	return m.movies
}

func (m *Mongo) GetQueryTimeout() time.Duration {
	return m.queryTimeout
}

func (m *Mongo) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

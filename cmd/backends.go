package main

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/storage"

	"github.com/sirupsen/logrus"
)

type connection interface {
	HealthCheck() error
	Close() error
}

// store pairs the movie repository with the connection behind it. The memory
// driver has no connection.
type store struct {
	movies repository.MovieRepository
	conn   connection
}

func (s *store) HealthCheck() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.HealthCheck()
}

func (s *store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func openStore(cfg *config.Config, log *logrus.Logger) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db, err := database.ConnectMongo(cfg, log)
		if err != nil {
			return nil, err
		}
		return &store{movies: repository.NewMongoMovieRepository(db), conn: db}, nil
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(cfg, log)
		if err != nil {
			return nil, err
		}
		repo, err := repository.NewGormMovieRepository(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &store{movies: repo, conn: db}, nil
	case config.DriverMemory:
		log.Warn("Using in-memory movie store, data is lost on restart")
		return &store{movies: repository.NewMemoryMovieRepository()}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func openFileStorage(cfg *config.Config, log *logrus.Logger) (storage.FileStorage, error) {
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		return storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.PublicPath, log)
	case config.StorageMinIO:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return storage.NewMinIOStorage(ctx, &cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

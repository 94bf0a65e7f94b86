package database

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres is the relational alternative to the document store.
type Postgres struct {
	*gorm.DB
	queryTimeout time.Duration
}

func ConnectPostgres(cfg *config.Config, log *logrus.Logger) (*Postgres, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
		PrepareStmt: true,
		// Connectivity is checked below with a bounded ping.
		DisableAutomaticPing: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), gormConfig)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pg := cfg.Database.Postgres
	sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	log.WithFields(logrus.Fields{
		"host":     pg.Host,
		"database": pg.DBName,
	}).Info("PostgreSQL connection established successfully")

	return &Postgres{
		DB:           db,
		queryTimeout: cfg.Database.QueryTimeout,
	}, nil
}

func (p *Postgres) GetQueryTimeout() time.Duration {
	return p.queryTimeout
}

func (p *Postgres) HealthCheck() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (p *Postgres) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

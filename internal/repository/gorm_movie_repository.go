package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type movieRecord struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Title       string    `gorm:"not null;index"`
	Description string    `gorm:"type:text;not null"`
	Genre       string    `gorm:"index"`
	ReleaseYear *int      `gorm:"index"`
	Images      []string  `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (movieRecord) TableName() string {
	return "movies"
}

type gormMovieRepository struct {
	db      *database.Postgres
	timeout time.Duration
}

// NewGormMovieRepository migrates the movies table and returns a repository
// backed by it.
func NewGormMovieRepository(db *database.Postgres) (MovieRepository, error) {
	if err := db.AutoMigrate(&movieRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run auto migration: %w", err)
	}

	return &gormMovieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}, nil
}

func (r *gormMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rec := toRecord(movie)
	rec.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	*movie = *fromRecord(rec)
	return nil
}

func (r *gormMovieRepository) FindAll(ctx context.Context, limit int) ([]models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := r.db.WithContext(ctx).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []movieRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	movies := make([]models.Movie, 0, len(records))
	for i := range records {
		movies = append(movies, *fromRecord(&records[i]))
	}
	return movies, nil
}

func (r *gormMovieRepository) FindByID(ctx context.Context, id string) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rec movieRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return fromRecord(&rec), nil
}

func (r *gormMovieRepository) Update(ctx context.Context, id string, changes models.MovieChanges) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var updated *models.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec movieRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return translateGormError(err)
		}

		movie := fromRecord(&rec)
		changes.Apply(movie)

		// UpdateColumns keeps the caller's UpdatedAt instead of GORM's clock.
		next := toRecord(movie)
		if err := tx.Model(next).Select("*").UpdateColumns(next).Error; err != nil {
			return err
		}
		updated = fromRecord(next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *gormMovieRepository) Delete(ctx context.Context, id string) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var deleted *models.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec movieRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return translateGormError(err)
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		deleted = fromRecord(&rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func toRecord(m *models.Movie) *movieRecord {
	return &movieRecord{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Images:      nonNilImages(m.Images),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromRecord(rec *movieRecord) *models.Movie {
	return &models.Movie{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Genre:       rec.Genre,
		ReleaseYear: rec.ReleaseYear,
		Images:      nonNilImages(rec.Images),
		CreatedAt:   rec.CreatedAt.UTC(),
		UpdatedAt:   rec.UpdatedAt.UTC(),
	}
}

package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRecordRoundTrip(t *testing.T) {
	year := 2021
	movie := &models.Movie{
		ID:          "7d5e7f4e-3a0c-4f2e-9d51-0b8a3c2f1e6d",
		Title:       "Dune",
		Description: "Sci-fi epic",
		Genre:       "Sci-Fi",
		ReleaseYear: &year,
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}

	rec := toRecord(movie)
	assert.Equal(t, []string{}, rec.Images)

	back := fromRecord(rec)
	movie.Images = []string{}
	assert.Equal(t, movie, back)
}

func TestTranslateGormError(t *testing.T) {
	assert.ErrorIs(t, translateGormError(gorm.ErrRecordNotFound), ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateGormError(other))
}

// Runs against a live PostgreSQL configured through the DB_* variables.
func TestGormRepositoryAgainstPostgres(t *testing.T) {
	if os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("TEST_POSTGRES not set")
	}

	log, _ := test.NewNullLogger()
	cfg := config.Load()
	db, err := database.ConnectPostgres(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewGormMovieRepository(db)
	require.NoError(t, err)
	ctx := context.Background()

	created := time.Now().UTC().Truncate(time.Millisecond)
	movie := &models.Movie{
		Title:       "Dune",
		Description: "Sci-fi epic",
		Images:      []string{"/uploads/a.png"},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, repo.Create(ctx, movie))
	t.Cleanup(func() { repo.Delete(context.Background(), movie.ID) })

	genre := "Adventure"
	changed := created.Add(1500 * time.Millisecond)
	updated, err := repo.Update(ctx, movie.ID, models.MovieChanges{Genre: &genre, UpdatedAt: changed})
	require.NoError(t, err)
	assert.Equal(t, "Adventure", updated.Genre)
	assert.Equal(t, changed, updated.UpdatedAt)
	assert.Equal(t, movie.Images, updated.Images)

	found, err := repo.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, found)

	deleted, err := repo.Delete(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, found, deleted)

	_, err = repo.FindByID(ctx, movie.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

package repository

import (
	"context"
	"errors"
	"time"

	"movie-catalog/internal/models"
)

// ErrNotFound is returned when no movie matches the id, including ids the
// engine cannot parse.
var ErrNotFound = errors.New("movie not found")

type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	FindAll(ctx context.Context, limit int) ([]models.Movie, error)
	FindByID(ctx context.Context, id string) (*models.Movie, error)
	// Update applies changes and returns the post-update record.
	Update(ctx context.Context, id string, changes models.MovieChanges) (*models.Movie, error)
	// Delete removes the record and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*models.Movie, error)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

package repository

import (
	"context"
	"sync"

	"movie-catalog/internal/models"

	"github.com/google/uuid"
)

// memoryMovieRepository keeps movies in process memory in insertion order.
// It backs DB_DRIVER=memory and the service tests.
type memoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[string]models.Movie
	order  []string
}

func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{
		movies: make(map[string]models.Movie),
	}
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movie.ID = uuid.NewString()
	movie.Images = nonNilImages(movie.Images)
	r.movies[movie.ID] = cloneMovie(*movie)
	r.order = append(r.order, movie.ID)
	return nil
}

func (r *memoryMovieRepository) FindAll(ctx context.Context, limit int) ([]models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]models.Movie, 0, len(r.order))
	for _, id := range r.order {
		if limit > 0 && len(movies) == limit {
			break
		}
		movies = append(movies, cloneMovie(r.movies[id]))
	}
	return movies, nil
}

func (r *memoryMovieRepository) FindByID(ctx context.Context, id string) (*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	movie = cloneMovie(movie)
	return &movie, nil
}

func (r *memoryMovieRepository) Update(ctx context.Context, id string, changes models.MovieChanges) (*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	changes.Apply(&movie)
	r.movies[id] = cloneMovie(movie)
	return &movie, nil
}

func (r *memoryMovieRepository) Delete(ctx context.Context, id string) (*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.movies, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &movie, nil
}

func cloneMovie(m models.Movie) models.Movie {
	m.Images = append([]string{}, m.Images...)
	if m.ReleaseYear != nil {
		year := *m.ReleaseYear
		m.ReleaseYear = &year
	}
	return m
}

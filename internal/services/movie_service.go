package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/storage"

	"github.com/sirupsen/logrus"
)

type MovieService interface {
	CreateMovie(ctx context.Context, input MovieInput, files []storage.File) (*models.Movie, error)
	ListMovies(ctx context.Context, limit int) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id string, input MovieInput, files []storage.File) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id string) (*models.Movie, error)
}

// MovieInput carries the client-supplied scalar fields. Nil means the field
// was not sent.
type MovieInput struct {
	Title       *string
	Description *string
	Genre       *string
	ReleaseYear *int
}

// UploadLimits caps the number of files accepted per operation.
type UploadLimits struct {
	Create int
	Update int
}

type movieService struct {
	repo    repository.MovieRepository
	files   storage.FileStorage
	limits  UploadLimits
	logger  *logrus.Logger
	nowFunc func() time.Time
}

func NewMovieService(repo repository.MovieRepository, files storage.FileStorage, limits UploadLimits, logger *logrus.Logger) MovieService {
	return &movieService{
		repo:   repo,
		files:  files,
		limits: limits,
		logger: logger,
		nowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

func (s *movieService) CreateMovie(ctx context.Context, input MovieInput, files []storage.File) (*models.Movie, error) {
	if err := validateRequired("title", input.Title); err != nil {
		return nil, err
	}
	if err := validateRequired("description", input.Description); err != nil {
		return nil, err
	}
	if err := validateFileCount(files, s.limits.Create); err != nil {
		return nil, err
	}

	images, err := s.storeFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	movie := &models.Movie{
		Title:       strings.TrimSpace(*input.Title),
		Description: strings.TrimSpace(*input.Description),
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Genre != nil {
		movie.Genre = strings.TrimSpace(*input.Genre)
	}
	if input.ReleaseYear != nil {
		year := *input.ReleaseYear
		movie.ReleaseYear = &year
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		s.logger.WithError(err).WithField("images", images).Error("Failed to persist movie after storing uploads")
		return nil, fmt.Errorf("%w: create movie: %v", ErrStorage, err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":     movie.ID,
		"images": len(images),
	}).Info("Movie created")

	return movie, nil
}

func (s *movieService) ListMovies(ctx context.Context, limit int) ([]models.Movie, error) {
	if limit < 0 {
		limit = 0
	}

	movies, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list movies: %v", ErrStorage, err)
	}
	return movies, nil
}

func (s *movieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err, id)
	}
	return movie, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id string, input MovieInput, files []storage.File) (*models.Movie, error) {
	if input.Title != nil {
		if err := validateRequired("title", input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateRequired("description", input.Description); err != nil {
			return nil, err
		}
	}
	if err := validateFileCount(files, s.limits.Update); err != nil {
		return nil, err
	}

	// Check existence first so uploads for an unknown id are never written.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, translateRepositoryError(err, id)
	}

	changes := models.MovieChanges{
		Title:       trimmed(input.Title),
		Description: trimmed(input.Description),
		Genre:       trimmed(input.Genre),
		ReleaseYear: input.ReleaseYear,
		UpdatedAt:   s.nowFunc(),
	}

	if len(files) > 0 {
		images, err := s.storeFiles(ctx, files)
		if err != nil {
			return nil, err
		}
		changes.Images = &images
	}

	movie, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, translateRepositoryError(err, id)
	}

	s.logger.WithFields(logrus.Fields{
		"id":             id,
		"imagesReplaced": changes.Images != nil,
	}).Info("Movie updated")

	return movie, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err, id)
	}

	for _, image := range movie.Images {
		if err := s.files.Remove(ctx, image); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"id":    id,
				"image": image,
			}).Warn("Error deleting file")
		}
	}

	s.logger.WithField("id", id).Info("Movie deleted")
	return movie, nil
}

func (s *movieService) storeFiles(ctx context.Context, files []storage.File) ([]string, error) {
	images := make([]string, 0, len(files))
	for _, file := range files {
		ref, err := s.files.Save(ctx, file)
		if err != nil {
			s.logger.WithError(err).WithField("file", file.Name).Error("Failed to store uploaded file")
			s.removeFiles(ctx, images)
			return nil, fmt.Errorf("%w: store %s: %v", ErrStorage, file.Name, err)
		}
		images = append(images, ref)
	}
	return images, nil
}

// removeFiles discards files saved earlier in a request that failed part way.
func (s *movieService) removeFiles(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.files.Remove(ctx, ref); err != nil {
			s.logger.WithError(err).WithField("image", ref).Warn("Error deleting file")
		}
	}
}

func translateRepositoryError(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func validateRequired(field string, value *string) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return newValidationError(field, "is required")
	}
	return nil
}

func validateFileCount(files []storage.File, limit int) error {
	if len(files) > limit {
		return newValidationError("images", fmt.Sprintf("at most %d files allowed", limit))
	}
	return nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

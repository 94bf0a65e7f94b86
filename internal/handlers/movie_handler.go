package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"movie-catalog/internal/services"
	"movie-catalog/internal/storage"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary Get all movies
// @Description List movies in store order. A positive limit caps the result; anything else returns every movie.
// @Tags movies
// @Produce json
// @Param limit query int false "Maximum number of movies"
// @Success 200 {array} models.Movie "List of movies"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	movies, err := h.service.ListMovies(c.UserContext(), limit)
	if err != nil {
		return h.handleError(c, err, "Failed to retrieve movies")
	}

	return utils.JSONResponse(c, fiber.StatusOK, movies)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie by its ID
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.Movie "Movie details"
// @Failure 404 {object} utils.ErrorBody "Movie not found"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id := c.Params("id")

	movie, err := h.service.GetMovie(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err, "Failed to retrieve movie")
	}

	return utils.JSONResponse(c, fiber.StatusOK, movie)
}

// CreateMovie godoc
// @Summary Create a new movie
// @Description Create a movie. Image files sent under "images" are stored and referenced from the record.
// @Tags movies
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param genre formData string false "Genre"
// @Param releaseYear formData int false "Release year"
// @Param images formData file false "Image files (repeatable)"
// @Success 200 {object} models.Movie "Created movie"
// @Failure 400 {object} utils.ErrorBody "Missing or invalid field"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	input, headers, err := parseMovieRequest(c)
	if err != nil {
		return h.handleError(c, err, "Invalid request body")
	}

	files, closeFiles, err := openUploads(headers)
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid uploaded file")
	}
	defer closeFiles()

	movie, err := h.service.CreateMovie(c.UserContext(), input, files)
	if err != nil {
		return h.handleError(c, err, "Failed to create movie")
	}

	return utils.JSONResponse(c, fiber.StatusOK, movie)
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Change only the supplied fields. New image files replace the whole image list; without files the images are kept.
// @Tags movies
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param genre formData string false "Genre"
// @Param releaseYear formData int false "Release year"
// @Param images formData file false "Image files (repeatable)"
// @Success 200 {object} models.Movie "Updated movie"
// @Failure 400 {object} utils.ErrorBody "Invalid field"
// @Failure 404 {object} utils.ErrorBody "Movie not found"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	id := c.Params("id")

	input, headers, err := parseMovieRequest(c)
	if err != nil {
		return h.handleError(c, err, "Invalid request body")
	}

	files, closeFiles, err := openUploads(headers)
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid uploaded file")
	}
	defer closeFiles()

	movie, err := h.service.UpdateMovie(c.UserContext(), id, input, files)
	if err != nil {
		return h.handleError(c, err, "Failed to update movie")
	}

	return utils.JSONResponse(c, fiber.StatusOK, movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie and its stored image files. Returns the deleted record.
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.Movie "Deleted movie"
// @Failure 404 {object} utils.ErrorBody "Movie not found"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	id := c.Params("id")

	movie, err := h.service.DeleteMovie(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err, "Failed to delete movie")
	}

	return utils.JSONResponse(c, fiber.StatusOK, movie)
}

func (h *MovieHandler) handleError(c *fiber.Ctx, err error, message string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error(message)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, message)
	}
}

func openUploads(headers []*multipart.FileHeader) ([]storage.File, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, storage.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Reader:      f,
		})
	}
	return files, closeAll, nil
}

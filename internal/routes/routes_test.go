package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-catalog/internal/handlers"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/services"
	"movie-catalog/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir, "/uploads", logger)
	require.NoError(t, err)

	svc := services.NewMovieService(repository.NewMemoryMovieRepository(), files, services.UploadLimits{Create: 5, Update: 10}, logger)

	app := fiber.New()
	MountUploads(app, "/uploads", dir)
	Setup(app, handlers.NewMovieHandler(svc, logger))
	return app
}

func TestUploadedImagesAreServed(t *testing.T) {
	app := newApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Dune"))
	require.NoError(t, w.WriteField("description", "Sci-fi epic"))
	part, err := w.CreateFormFile("images", "poster.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("poster-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/movies", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var movie models.Movie
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&movie))
	resp.Body.Close()
	require.Len(t, movie.Images, 1)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, movie.Images[0], nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "poster-bytes", string(body))
}

func TestRouteTable(t *testing.T) {
	app := newApp(t)

	for _, tt := range []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/movies", http.StatusOK},
		{http.MethodGet, "/api/movies/missing", http.StatusNotFound},
		{http.MethodPut, "/api/movies/missing", http.StatusNotFound},
		{http.MethodDelete, "/api/movies/missing", http.StatusNotFound},
	} {
		resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tt.want, resp.StatusCode, "%s %s", tt.method, tt.path)
	}
}

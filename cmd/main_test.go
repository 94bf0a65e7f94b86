package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-catalog/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnection struct {
	err error
}

func (f fakeConnection) HealthCheck() error { return f.err }
func (f fakeConnection) Close() error       { return nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name string
		conn connection
		want string
	}{
		{name: "memory", conn: nil, want: "healthy"},
		{name: "reachable", conn: fakeConnection{}, want: "healthy"},
		{name: "unreachable", conn: fakeConnection{err: errors.New("down")}, want: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", healthCheckHandler(&store{conn: tt.conn}, config.DriverMongo))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, body["database"])
			assert.Equal(t, "ok", body["status"])
		})
	}
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: customErrorHandler(quietLogger())})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "short and stout", body["message"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fail", body["status"])
}

func TestOpenStoreMemory(t *testing.T) {
	cfg := config.Load()
	cfg.Database.Driver = config.DriverMemory

	s, err := openStore(cfg, quietLogger())
	require.NoError(t, err)
	assert.NotNil(t, s.movies)
	assert.NoError(t, s.HealthCheck())
	assert.NoError(t, s.Close())
}

func TestOpenFileStorageLocal(t *testing.T) {
	cfg := config.Load()
	cfg.Storage.Driver = config.StorageLocal
	cfg.Storage.UploadDir = t.TempDir()

	files, err := openFileStorage(cfg, quietLogger())
	require.NoError(t, err)
	assert.NotNil(t, files)

	cfg.Storage.Driver = "ftp"
	_, err = openFileStorage(cfg, quietLogger())
	assert.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "MONGODB_URI", "STORAGE_DRIVER", "UPLOAD_CREATE_LIMIT", "UPLOAD_UPDATE_LIMIT", "UPLOAD_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "/uploads", cfg.Storage.PublicPath)
	assert.Equal(t, 5, cfg.Upload.CreateLimit)
	assert.Equal(t, 10, cfg.Upload.UpdateLimit)
	assert.Empty(t, cfg.Database.Mongo.URI)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	require.NoError(t, Load().Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("UPLOAD_CREATE_LIMIT", "2")
	t.Setenv("UPLOAD_UPDATE_LIMIT", "not-a-number")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("AWS_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2, cfg.Upload.CreateLimit)
	assert.Equal(t, 10, cfg.Upload.UpdateLimit)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "memory driver",
			mutate: func(c *Config) { c.Database.Driver = DriverMemory },
		},
		{
			name:    "unknown database driver",
			mutate:  func(c *Config) { c.Database.Driver = "redis" },
			wantErr: "unsupported DB_DRIVER",
		},
		{
			name:    "missing mongo uri",
			mutate:  func(c *Config) { c.Database.Mongo.URI = "" },
			wantErr: "MONGODB_URI",
		},
		{
			name:    "unknown storage driver",
			mutate:  func(c *Config) { c.Storage.Driver = "ftp" },
			wantErr: "unsupported STORAGE_DRIVER",
		},
		{
			name: "minio without credentials",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageMinIO
				c.MinIO.AccessKeyID = ""
			},
			wantErr: "AWS_ACCESS_KEY_ID",
		},
		{
			name:    "negative upload limit",
			mutate:  func(c *Config) { c.Upload.CreateLimit = -1 },
			wantErr: "upload limits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			cfg.Database.Mongo.URI = "mongodb://localhost:27017"
			cfg.Storage.Driver = StorageLocal
			cfg.MinIO.AccessKeyID = "key"
			cfg.MinIO.SecretAccessKey = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Postgres: PostgresConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "movies", SSLMode: "disable",
	}}}

	dsn := cfg.GetDSN()

	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "dbname=movies")
}

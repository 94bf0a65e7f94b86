package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	StorageLocal = "local"
	StorageMinIO = "minio"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Upload   UploadConfig
	MinIO    MinIOConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DatabaseConfig struct {
	Driver       string
	QueryTimeout time.Duration
	Mongo        MongoConfig
	Postgres     PostgresConfig
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type StorageConfig struct {
	Driver     string
	UploadDir  string
	PublicPath string
}

// UploadConfig caps the number of image files accepted per request.
type UploadConfig struct {
	CreateLimit int
	UpdateLimit int
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	PublicURL       string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "3000"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			BodyLimit:    getIntOrDefault("SERVER_BODY_LIMIT", 50*1024*1024),
		},
		Database: DatabaseConfig{
			Driver:       getEnvOrDefault("DB_DRIVER", DriverMongo),
			QueryTimeout: getDurationOrDefault("DB_QUERY_TIMEOUT", 10*time.Second),
			Mongo: MongoConfig{
				URI:        os.Getenv("MONGODB_URI"),
				Database:   getEnvOrDefault("MONGODB_DATABASE", "movies"),
				Collection: getEnvOrDefault("MONGODB_COLLECTION", "movies"),
			},
			Postgres: PostgresConfig{
				Host:            getEnvOrDefault("DB_HOST", "localhost"),
				Port:            getEnvOrDefault("DB_PORT", "5432"),
				User:            getEnvOrDefault("DB_USER", "postgres"),
				Password:        getEnvOrDefault("DB_PASSWORD", "postgres"),
				DBName:          getEnvOrDefault("DB_NAME", "movie_db"),
				SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
				MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			},
		},
		Storage: StorageConfig{
			Driver:     getEnvOrDefault("STORAGE_DRIVER", StorageLocal),
			UploadDir:  getEnvOrDefault("UPLOAD_DIR", "uploads"),
			PublicPath: getEnvOrDefault("UPLOAD_PUBLIC_PATH", "/uploads"),
		},
		Upload: UploadConfig{
			CreateLimit: getIntOrDefault("UPLOAD_CREATE_LIMIT", 5),
			UpdateLimit: getIntOrDefault("UPLOAD_UPDATE_LIMIT", 10),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnvOrDefault("AWS_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnvOrDefault("AWS_BUCKET", "movies"),
			Region:          getEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1"),
			UseSSL:          getBoolOrDefault("AWS_USE_SSL", false),
			PublicURL:       getEnvOrDefault("AWS_URL", "http://localhost:9000/movies"),
		},
	}
}

// GetDSN returns PostgreSQL connection string
func (c *Config) GetDSN() string {
	p := c.Database.Postgres
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		p.Host,
		p.Port,
		p.User,
		p.Password,
		p.DBName,
		p.SSLMode,
	)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Upload.CreateLimit < 0 || c.Upload.UpdateLimit < 0 {
		return fmt.Errorf("upload limits must not be negative")
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
	case DriverPostgres:
		if c.Database.Postgres.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required")
		}
	case StorageMinIO:
		if c.MinIO.AccessKeyID == "" {
			return fmt.Errorf("AWS_ACCESS_KEY_ID is required for MinIO")
		}
		if c.MinIO.SecretAccessKey == "" {
			return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required for MinIO")
		}
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("AWS_ENDPOINT is required for MinIO")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

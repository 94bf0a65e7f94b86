package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"movie-catalog/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

type minioStorage struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	logger    *logrus.Logger
}

func NewMinIOStorage(ctx context.Context, cfg *config.MinIOConfig, logger *logrus.Logger) (FileStorage, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	s := &minioStorage{
		client:    client,
		bucket:    cfg.BucketName,
		region:    cfg.Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    logger,
	}

	if err := s.ensureBucket(ctx); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return s, nil
}

func (s *minioStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

func (s *minioStorage) Save(ctx context.Context, file File) (string, error) {
	objectName := GenerateName(file.Name)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	size := file.Size
	if size <= 0 {
		size = -1
	}

	info, err := s.client.PutObject(ctx, s.bucket, objectName, file.Reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"original":   file.Name,
		"objectName": objectName,
		"size":       info.Size,
	}).Debug("Uploaded file to MinIO")

	return s.publicURL + "/" + objectName, nil
}

func (s *minioStorage) Remove(ctx context.Context, reference string) error {
	objectName, err := objectNameFromReference(reference, s.bucket)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectName", objectName).Info("File deleted successfully from MinIO")
	return nil
}

// objectNameFromReference extracts the object name from a public URL or a
// bucket-relative path.
func objectNameFromReference(reference, bucket string) (string, error) {
	name := reference
	if strings.Contains(reference, "://") {
		u, err := url.Parse(reference)
		if err != nil {
			return "", ErrInvalidReference
		}
		name = u.Path
	}

	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, bucket+"/")
	name = path.Base(name)

	if name == "" || name == "." || name == "/" || name == ".." {
		return "", ErrInvalidReference
	}
	return name, nil
}

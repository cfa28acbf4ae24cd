package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"socialboard/internal/config"
	"socialboard/internal/models"
)

// Storage keeps post images. Object names are what the database stores;
// URL turns one into an address clients can fetch.
type Storage interface {
	Upload(ctx context.Context, upload models.ImageUpload) (string, error)
	Delete(ctx context.Context, objectName string) error
	URL(objectName string) string
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
	log    *zap.Logger
}

func NewMinIOClient(cfg config.MinIO, log *zap.Logger) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg, log: log}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.cfg.BucketName, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.cfg.BucketName, minio.MakeBucketOptions{Region: m.cfg.Region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", m.cfg.BucketName, err)
	}

	m.log.Info("bucket created", zap.String("bucket", m.cfg.BucketName))
	return nil
}

func (m *MinIOClient) Upload(ctx context.Context, upload models.ImageUpload) (string, error) {
	now := time.Now()
	objectName := ObjectName(upload.FileName, now)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = contentTypeOf(upload.FileName)
	}

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, upload.Reader, upload.Size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": upload.FileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}

	m.log.Debug("image uploaded",
		zap.String("object", objectName),
		zap.Int64("size", upload.Size),
	)

	return objectName, nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}

func (m *MinIOClient) URL(objectName string) string {
	return PublicURL(m.cfg.PublicURL, m.cfg.BucketName, objectName)
}

// ObjectName places an upload under posts/<year>/<month>/ with a random base name.
func ObjectName(fileName string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	return fmt.Sprintf("posts/%d/%02d/%s%s",
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)
}

func PublicURL(base, bucket, objectName string) string {
	if objectName == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), bucket, objectName)
}

func contentTypeOf(fileName string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}

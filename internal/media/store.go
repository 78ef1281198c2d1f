package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// objectClient is the subset of minio.Client the store depends on.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Store uploads request files into the media bucket and removes them on cleanup.
type Store struct {
	client objectClient
	bucket string
}

// NewStore constructs a media store bound to one bucket.
func NewStore(client objectClient, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Upload streams a multipart file into the bucket under the given prefix and
// returns the stored object name.
func (s *Store) Upload(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", apperr.New(apperr.Validation, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	objectName := path.Join(prefix, uuid.New().String())
	opts := minio.PutObjectOptions{ContentType: detectContentType(fileHeader)}

	if _, err := s.client.PutObject(ctx, s.bucket, objectName, file, fileHeader.Size, opts); err != nil {
		return "", apperr.Wrap(apperr.Upstream, "media store upload failed", err)
	}

	return objectName, nil
}

// Remove deletes an object; callers treat failures as best-effort cleanup.
func (s *Store) Remove(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return apperr.Wrap(apperr.Upstream, "media store delete failed", err)
	}
	return nil
}

func detectContentType(fileHeader *multipart.FileHeader) string {
	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

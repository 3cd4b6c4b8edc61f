package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectPrefix is the folder every story asset lives under. The purge
// sweep relies on keys being exactly "<objectPrefix>/<file>".
const objectPrefix = "stories"

type MinioStorage struct {
	client     minioClient
	bucketName string
	baseURL    string
}

// compile-time check: *MinioStorage must satisfy port.ObjectStorage
var _ port.ObjectStorage = (*MinioStorage)(nil)

func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStorage, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err, story.ErrStorageUpload)
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioStorage{
		client:  client,
		baseURL: fmt.Sprintf("%s://%s", scheme, endpoint),
	}, nil
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ctx := context.Background()
	ok, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return mapMinioErr(err, story.ErrStorageUpload)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err, story.ErrStorageUpload)
		}
	}
	s.bucketName = bucket
	return nil
}

// UploadFile pushes a local file under a fresh key and returns its public
// URL. The key keeps the local file's extension so content can be served
// with the right type.
func (s *MinioStorage) UploadFile(ctx context.Context, localPath, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(localPath))
	key := fmt.Sprintf("%s/%s%s", objectPrefix, db.NewUUID(), ext)
	logger.Infof(ctx, "uploading %q as %q to bucket %q...", localPath, key, s.bucketName)

	_, err := s.client.FPutObject(ctx, s.bucketName, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", mapMinioErr(err, story.ErrStorageUpload)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucketName, key), nil
}

func (s *MinioStorage) RemoveFile(ctx context.Context, objectKey string) error {
	logger.Infof(ctx, "removing file %q from bucket %q...", objectKey, s.bucketName)

	err := s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{})
	return mapMinioErr(err, story.ErrStorageDelete)
}

// Package objectstore uploads user-submitted images to an S3-compatible
// bucket and hands back their public URLs.
package objectstore

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the upload contract consumed by the handlers.
type ObjectStore interface {
	// UploadFiles stores each file and returns their URLs in input order.
	UploadFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

// MinioStore implements ObjectStore against a MinIO/S3 bucket.
type MinioStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewMinioStore connects to the object-storage endpoint and ensures the
// bucket exists.
func NewMinioStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, endpoint: endpoint, bucket: bucket, useSSL: useSSL}, nil
}

func (s *MinioStore) UploadFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %q: %w", header.Filename, err)
		}

		objectName := uuid.NewString() + filepath.Ext(header.Filename)
		_, err = s.client.PutObject(ctx, s.bucket, objectName, src, header.Size, minio.PutObjectOptions{
			ContentType: header.Header.Get("Content-Type"),
		})
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload %q: %w", header.Filename, err)
		}

		scheme := "http"
		if s.useSSL {
			scheme = "https"
		}
		urls = append(urls, fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName))
	}
	return urls, nil
}

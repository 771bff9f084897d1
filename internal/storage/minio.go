package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const imageBucket = "lingoverse-images"

// ImageStore keeps course and mentor images in MinIO and hands back the
// public object URL for the stored image field.
type ImageStore struct {
	client   *minio.Client
	endpoint string
}

// NewImageStore connects to MinIO and makes sure the image bucket
// exists.
func NewImageStore(endpoint, accessKey, secretKey string) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, imageBucket)
	if err != nil {
		log.Printf("Warning: failed to check bucket existence: %v", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, imageBucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Warning: failed to create bucket: %v", err)
		} else {
			log.Printf("Created bucket: %s", imageBucket)
		}
	}

	return &ImageStore{client: client, endpoint: endpoint}, nil
}

// Save stores an image and returns its URL.
func (s *ImageStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s_%s", uuid.NewString(), filename)
	_, err := s.client.PutObject(ctx, imageBucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, imageBucket, objectName), nil
}

// Package storage holds uploaded file payloads in a MinIO bucket. Records
// in the database reference payloads by the key returned from Put.
package storage

import (
	"context"
	"io"

	"collab/config"
	"collab/logutils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Store struct {
	client *minio.Client
	bucket string
}

// NewStore initializes the MinIO client and ensures the bucket exists.
func NewStore(cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "minio bucket check")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "minio bucket create")
		}
		logutils.Log.Infof("created bucket %s", cfg.Minio.Bucket)
	}
	return &Store{client: client, bucket: cfg.Minio.Bucket}, nil
}

// Put stores a payload under a fresh key and returns the key.
func (s *Store) Put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	key := uuid.NewString()
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return key, nil
}

// Get opens the payload stream for a stored key.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object %s", key)
	}
	return obj, nil
}

// Remove deletes the payload for a stored key. Missing objects are not an
// error: record deletion must win over storage drift.
func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return errors.Wrapf(err, "remove object %s", key)
	}
	return nil
}

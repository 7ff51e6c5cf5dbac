package services

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// BlobStore is the slice of bucket behavior the routes need. Satisfied by
// StorageBucket in production and by fakes in tests.
type BlobStore interface {
	Exists(ctx context.Context, blobName string) (bool, error)
	Upload(ctx context.Context, blobName, contentType string, r io.Reader) error
}

type StorageBucket struct {
	*storage.BucketHandle
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &StorageBucket{bucket}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	_, err := sb.Object(blobName).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (sb *StorageBucket) Upload(ctx context.Context, blobName, contentType string, r io.Reader) error {
	w := sb.Object(blobName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

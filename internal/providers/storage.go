package providers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// ErrObjectNotFound reports a missing object; callers treat it as a per-key
// condition, not a provider failure.
var ErrObjectNotFound = errors.New("object not found")

// ObjectReader reads whole objects from blob storage.
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket, object string) ([]byte, error)
	Close() error
}

type gcsReader struct {
	client *storage.Client
}

// NewObjectReader builds an ObjectReader over Google Cloud Storage using
// ambient ADC credentials.
func NewObjectReader(ctx context.Context) (ObjectReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &gcsReader{client: client}, nil
}

func (g *gcsReader) ReadObject(ctx context.Context, bucket, object string) ([]byte, error) {
	r, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("open gs://%s/%s: %w", bucket, object, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read gs://%s/%s: %w", bucket, object, err)
	}
	return data, nil
}

func (g *gcsReader) Close() error {
	return g.client.Close()
}

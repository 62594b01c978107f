// Package miniostore persists the slide-summary document in an S3-compatible
// object store.
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"slidesearch/internal/corpus/jsonfile"
	"slidesearch/internal/domain"
)

var _ domain.Source = (*Source)(nil)

// Source holds the summaries document as a single object in a bucket.
// The object body uses the same deck-keyed JSON shape as the jsonfile source.
type Source struct {
	client *minio.Client
	bucket string
	object string
}

// NewSource creates an object-store-backed source.
func NewSource(client *minio.Client, bucket, object string) *Source {
	return &Source{client: client, bucket: bucket, object: object}
}

// Load fetches and decodes the summaries object.
func (s *Source) Load(ctx context.Context) ([]domain.SlideRecord, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", s.bucket, s.object, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", s.bucket, s.object, err)
	}
	records, err := jsonfile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", s.bucket, s.object, err)
	}
	return records, nil
}

// Save encodes the records and overwrites the summaries object.
func (s *Source) Save(ctx context.Context, records []domain.SlideRecord) error {
	data, err := jsonfile.Encode(records)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, s.object, err)
	}
	return nil
}

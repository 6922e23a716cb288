// Package storage fetches a subscriber's raw uploaded FIT file from Cloud
// Storage ahead of parsing (pkg/domain/fitsamples) and scoring.
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Adapter implements zonecore.BlobStore against Google Cloud Storage.
type Adapter struct {
	Client *storage.Client
}

func (a *Adapter) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	rc, err := a.Client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s/%s: %w", bucket, object, err)
	}
	return data, nil
}

// Package archive stores uploaded batch files and generated exports in
// Google Cloud Storage so an analysis can be re-run or audited later.
// Archival is best-effort and optional; a failed upload never fails the
// pipeline run that produced it.
package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Archiver stores byte streams under a bucket/prefix layout.
type Archiver interface {
	// Store writes the stream and returns the gs:// URI of the object.
	Store(ctx context.Context, filename string, r io.Reader) (string, error)
}

// GCSArchiver is the concrete Archiver backed by a GCS bucket.
// Application Default Credentials are assumed.
type GCSArchiver struct {
	bucket string
	prefix string
}

// NewGCSArchiver creates an archiver for the given bucket and object
// prefix.
func NewGCSArchiver(bucket, prefix string) *GCSArchiver {
	return &GCSArchiver{bucket: bucket, prefix: prefix}
}

// Store implements Archiver. Objects are keyed by upload date and a
// fresh uuid so repeated uploads of the same filename never collide.
func (a *GCSArchiver) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	objectName := fmt.Sprintf("%s/%s/%s-%s",
		a.prefix, time.Now().Format("2006/01/02"), uuid.NewString(), path.Base(filename))
	gcsURI := fmt.Sprintf("gs://%s/%s", a.bucket, objectName)

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("archive: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("archive: copy to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("archive: finalize upload: %w", err)
	}

	return gcsURI, nil
}

var _ Archiver = (*GCSArchiver)(nil)

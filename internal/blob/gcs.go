package blob

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/samersoltani/dewini-server/pkg/helpers"
)

// Bucket stores blobs in a Google Cloud Storage bucket and records the
// public https URL, so downloads of these documents go through the
// external-URL branch.
type Bucket struct {
	client *storage.Client
	bucket string
}

func NewBucket(client *storage.Client, bucket string) *Bucket {
	return &Bucket{client: client, bucket: bucket}
}

func (b *Bucket) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	object := filepath.ToSlash(filepath.Join("uploads", uuid.NewString()+ext))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return helpers.UploadObject(ctx, b.client, b.bucket, object, contentType, r)
}

package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

// BlobStore persists uploaded files and returns a durable URL for them.
// Stored blobs are never removed when the records referencing them change.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

// AllowedContentTypes lists the declared MIME types accepted for upload.
var AllowedContentTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

var allowedExtensions = []string{".jpeg", ".jpg", ".png", ".gif", ".webp", ".pdf"}

// DefaultMaxUploadSize is 5 MiB.
const DefaultMaxUploadSize int64 = 5 << 20

// ValidateUpload checks the declared content type, the file extension and
// the size of an upload.
func ValidateUpload(filename, contentType string, size, maxSize int64) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(AllowedContentTypes, mediaType) || !slices.Contains(allowedExtensions, ext) {
		return errs.NewUnsupportedMediaTypeError(contentType, AllowedContentTypes)
	}
	if size > maxSize {
		return errs.NewMaxBodySizeExceededError(maxSize)
	}
	return nil
}

// NewObjectName returns a unique storage name that keeps the original
// file extension, e.g. 1718000000000-6f1c...-....png
func NewObjectName(filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), ext)
}

// BucketEnsurer is implemented by stores that need provisioning at startup.
type BucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

// NewBlobStore selects the upload backend configured by UPLOAD_DRIVER.
func NewBlobStore(ctx context.Context, cfg config.Upload) (BlobStore, error) {
	switch cfg.Driver {
	case config.UploadLocal:
		return NewLocalBlobStore(cfg.Dir, cfg.BackendURL)
	case config.UploadS3:
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3BlobStore(client, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL), nil
	default:
		return nil, errs.NewConfigInvalidError("UPLOAD_DRIVER", cfg.Driver)
	}
}

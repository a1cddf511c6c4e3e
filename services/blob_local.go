package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LocalBlobStore writes uploads to a directory served under /uploads.
type LocalBlobStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalBlobStore creates dir if needed. baseURL is the public origin of
// the backend, without trailing slash.
func NewLocalBlobStore(dir, baseURL string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewBlobUploadError("local", err)
	}
	return &LocalBlobStore{
		dir:     dir,
		baseURL: baseURL,
		logger:  log.With().Str("service", "localBlobStore").Logger(),
	}, nil
}

// Dir is the directory files are written to.
func (s *LocalBlobStore) Dir() string {
	return s.dir
}

func (s *LocalBlobStore) Put(ctx context.Context, name, _ string, body io.Reader, _ int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", errs.NewBlobUploadError("local", errors.New("object name must not contain a path"))
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errs.NewBlobUploadError("local", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", errs.NewBlobUploadError("local", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", errs.NewBlobUploadError("local", err)
	}

	s.logger.Info().Str("fileName", name).Msg("File uploaded")
	return s.baseURL + "/uploads/" + name, nil
}

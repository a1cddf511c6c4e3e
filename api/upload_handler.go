package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// multipartOverhead leaves room for boundaries and part headers.
const multipartOverhead = 1 << 20

type uploadHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blobs       services.BlobStore
	maxFileSize int64
	now         func() time.Time
}

func newUploadHandler(blobs services.BlobStore, maxFileSize int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blobs:       blobs,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

// UploadResult is returned after a file has been stored.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// uploadFile stores an image or PDF and returns its public URL
// @Summary Upload file
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or PDF"
// @Success 200 {object} envelope "Stored file"
// @Failure 400 {object} envelope "Bad Request - No file provided"
// @Failure 413 {object} envelope "Payload Too Large"
// @Failure 415 {object} envelope "Unsupported Media Type"
// @Router /api/upload [post]
func (h uploadHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
		if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxFileSize))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				h.responder.WriteError(w, errs.NewMissingFileError())
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if err := services.ValidateUpload(header.Filename, contentType, header.Size, h.maxFileSize); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		name := services.NewObjectName(header.Filename, h.now())
		url, err := h.blobs.Put(r.Context(), name, contentType, file, header.Size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("fileName", name).Int64("size", header.Size).Msg("File stored")
		h.responder.WriteData(w, http.StatusOK, UploadResult{URL: url, FileName: name})
	}
}

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 5 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  ImageUploader
}

func newUploadHandler(uploader ImageUploader) *uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return &uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// uploadImage stores an image for a project or blog imageUrl
// @Summary Upload image
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "JPEG, PNG, GIF or WebP image"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /admin/uploads [post]
func (h *uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		if header.Size > maxUploadSize {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
			return
		}

		sniff := make([]byte, 512)
		n, err := io.ReadFull(file, sniff)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("upload", err))
			return
		}
		contentType := http.DetectContentType(sniff[:n])
		if !storage.Allowed(contentType) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "unsupported image type "+contentType))
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("rewind upload", err))
			return
		}

		url, err := h.uploader.Upload(r.Context(), contentType, file, header.Size)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("store upload", err))
			return
		}

		h.logger.Info().Str("url", url).Int64("size", header.Size).Msg("Image uploaded")
		h.responder.WriteJSONStatus(w, http.StatusCreated, UploadResponse{URL: url})
	}
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
)

const maxBodySize = 1 << 20

// decodeJSON reads exactly one JSON object into dst. Unknown fields,
// trailing data and oversized bodies are rejected as validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, payloadType string) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return errs.NewUnknownFieldError(field)
		default:
			return errs.NewMalformedPayloadError(payloadType, err)
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errs.NewMalformedPayloadError(payloadType, errors.New("body must contain a single JSON object"))
	}
	return nil
}

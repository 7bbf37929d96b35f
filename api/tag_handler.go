package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tags      TagStore
}

func newTagHandler(tags TagStore) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tags:      tags,
	}
}

// getTags lists every known tag so editors can reuse existing names
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h tagHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tags.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if tags == nil {
			tags = []models.Tag{}
		}
		h.responder.WriteJSON(w, tags)
	}
}

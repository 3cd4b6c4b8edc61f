package api

import (
	"errors"
	"net/http"

	"github.com/festalab/stories-ms-go/internal/api_context"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"
)

func GetStoryHandler(renderer port.HTTPRenderer, svc port.StoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.StoryIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		in := port.GetStoryInput{ID: id, RequesterMemberID: RequesterFromRequest(r)}
		raw, etag, err := renderer.RenderGetStory(r.Context(), svc, in)
		if err != nil {
			if errors.Is(err, story.ErrStoryNotFound) {
				WriteError(w, http.StatusNotFound, "Story not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get story details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached story #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for story #%s", id)
	}
}

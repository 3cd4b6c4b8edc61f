package api

import (
	"errors"
	"net/http"

	"github.com/festalab/stories-ms-go/internal/api_context"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"
)

func DeleteStoryHandler(svc port.StoryDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.StoryIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		requester := RequesterFromRequest(r)
		if requester == nil {
			WriteError(w, http.StatusBadRequest, "member identity is required", nil)
			return
		}

		if err := svc.DeleteStory(r.Context(), id, *requester); err != nil {
			switch {
			case errors.Is(err, story.ErrStoryNotFound):
				WriteError(w, http.StatusNotFound, "Story not found", nil)
			case errors.Is(err, story.ErrForbidden):
				WriteError(w, http.StatusForbidden, "Not the owner of this story", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not delete story", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted story #%s", id)
	}
}

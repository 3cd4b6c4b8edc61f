package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/festalab/stories-ms-go/internal/api_context"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"
)

type UpdateVisibilityRequest struct {
	IsOpen *bool `json:"is_open" validate:"required"`
}

func UpdateVisibilityHandler(svc port.VisibilityUpdater) http.HandlerFunc {
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

		var req UpdateVisibilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if req.IsOpen == nil {
			WriteError(w, http.StatusBadRequest, "is_open is required", nil)
			return
		}

		st, err := svc.UpdateVisibility(r.Context(), id, *requester, *req.IsOpen)
		if err != nil {
			switch {
			case errors.Is(err, story.ErrStoryNotFound):
				WriteError(w, http.StatusNotFound, "Story not found", nil)
			case errors.Is(err, story.ErrForbidden):
				WriteError(w, http.StatusForbidden, "Not the owner of this story", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not update story visibility", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, st)
		logger.Infof(r.Context(), "✅  Successfully set story #%s to open=%t", id, *req.IsOpen)
	}
}

package api

import (
	"net/http"
	"strconv"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
)

func ListStoriesHandler(svc port.StoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter port.ListStoriesFilter

		if raw := r.URL.Query().Get("festa_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "festa_id must be an integer", err)
				return
			}
			filter.FestaID = &id
		}
		filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		filter.Size, _ = strconv.Atoi(r.URL.Query().Get("size"))

		stories, err := svc.ListStories(r.Context(), filter)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list stories", err)
			return
		}

		RespondJSON(w, http.StatusOK, stories)
		logger.Infof(r.Context(), "✅  Successfully listed %d stories", len(stories))
	}
}

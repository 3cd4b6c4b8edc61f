package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"
	"github.com/festalab/stories-ms-go/internal/validation"
)

// uploadMemoryLimit caps how much of the multipart body is buffered in
// memory; the rest spills to disk.
const uploadMemoryLimit = 10 << 20

type UploadStoryRequest struct {
	MemberID  int64   `json:"member_id" validate:"required"`
	FestaID   *int64  `json:"festa_id"`
	FestaName *string `json:"festa_name"`
	IsOpen    bool    `json:"is_open"`
}

// UploadStoryHandler accepts a multipart upload and answers 202 as soon as
// the record is persisted and the processing job is dispatched.
func UploadStoryHandler(svc port.StoryIngestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid multipart payload", err)
			return
		}

		req, err := parseUploadForm(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Errorf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "file is required", err)
			return
		}
		defer file.Close()

		st, err := svc.IngestStory(r.Context(), port.IngestStoryInput{
			File:        file,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			MemberID:    req.MemberID,
			FestaID:     req.FestaID,
			FestaName:   req.FestaName,
			IsOpen:      req.IsOpen,
		})
		if err != nil {
			switch {
			case errors.Is(err, story.ErrUnsupportedMediaType):
				WriteError(w, http.StatusUnsupportedMediaType, "unsupported media type", err)
			case errors.Is(err, story.ErrDispatchUnavailable):
				WriteError(w, http.StatusServiceUnavailable, "story processing is unavailable", err)
			default:
				WriteError(w, http.StatusInternalServerError, "could not accept story upload", err)
			}
			return
		}

		RespondJSON(w, http.StatusAccepted, st)
		logger.Infof(r.Context(), "✅  Accepted story #%s for processing", st.ID)
	}
}

func parseUploadForm(r *http.Request) (UploadStoryRequest, error) {
	var req UploadStoryRequest

	if raw := r.FormValue("member_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, err
		}
		req.MemberID = id
	}
	if raw := r.FormValue("festa_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, err
		}
		req.FestaID = &id
	}
	if raw := r.FormValue("festa_name"); raw != "" {
		req.FestaName = &raw
	}
	if raw := r.FormValue("is_open"); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return req, err
		}
		req.IsOpen = open
	}

	return req, nil
}

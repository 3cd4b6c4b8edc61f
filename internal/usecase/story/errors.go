package story

import "errors"

var (
	// ErrUnsupportedMediaType means neither content type nor extension
	// matched a known image or video set. Surfaced synchronously; no
	// record is created.
	ErrUnsupportedMediaType = errors.New("story: unsupported media type")

	// ErrTempFileCreation means local staging I/O failed.
	ErrTempFileCreation = errors.New("story: temp file creation failed")

	// ErrThumbnailGeneration means a required rendition could not be
	// produced.
	ErrThumbnailGeneration = errors.New("story: thumbnail generation failed")

	// ErrTranscodeFailed means a subprocess invocation exited non-zero or
	// timed out.
	ErrTranscodeFailed = errors.New("story: transcode failed")

	ErrStorageUpload = errors.New("storage: upload failed")
	ErrStorageDelete = errors.New("storage: delete failed")

	// ErrDispatchUnavailable means no worker queue is configured, so an
	// upload can never be processed and must be refused.
	ErrDispatchUnavailable = errors.New("story: dispatch unavailable")

	ErrStoryNotFound = errors.New("story: not found")
	ErrForbidden     = errors.New("story: not the owner")
)

package story

import (
	"strings"

	"github.com/festalab/stories-ms-go/internal/model"
)

// DetectMediaCategory classifies an upload as image or video. The declared
// content type wins; the filename extension is the fallback. No side
// effects, no I/O.
func DetectMediaCategory(contentType, filename string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct != "" {
		if imageContentTypes[ct] {
			return model.CategoryImage, nil
		}
		if videoContentTypes[ct] {
			return model.CategoryVideo, nil
		}
	}

	ext := strings.ToLower(fileExtension(filename))
	if ext != "" {
		if imageExtensions[ext] {
			return model.CategoryImage, nil
		}
		if videoExtensions[ext] {
			return model.CategoryVideo, nil
		}
	}

	return "", ErrUnsupportedMediaType
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}

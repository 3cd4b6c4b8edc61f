package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"
)

// mapMinioErr translates a minio failure into the given sentinel
// (story.ErrStorageUpload or story.ErrStorageDelete, per operation).
func mapMinioErr(err, sentinel error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		// Removing an already-removed object is fine.
		return nil
	case "NoSuchBucket":
		return fmt.Errorf("%w: bucket not found", sentinel)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: unauthorized", sentinel)
	default:
		return fmt.Errorf("%w: %v", sentinel, err)
	}
}

package mock

import (
	"context"
	"fmt"
)

// MockStorage implements object storage for tests.
type MockStorage struct {
	InitErr   error
	UploadErr error
	RemoveErr error

	// UploadErrOn fails only the upload of this local path.
	UploadErrOn string

	InitCalled    bool
	InitBucketArg string
	Uploaded      []string
	UploadedTypes []string
	Removed       []string
}

func (s *MockStorage) InitBucket(bucket string) error {
	s.InitCalled = true
	s.InitBucketArg = bucket
	return s.InitErr
}

func (s *MockStorage) UploadFile(ctx context.Context, localPath, contentType string) (string, error) {
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	if s.UploadErrOn != "" && s.UploadErrOn == localPath {
		return "", fmt.Errorf("upload failed for %s", localPath)
	}
	s.Uploaded = append(s.Uploaded, localPath)
	s.UploadedTypes = append(s.UploadedTypes, contentType)
	return "https://cdn.example.com/stories/" + fmt.Sprintf("obj%d", len(s.Uploaded)), nil
}

func (s *MockStorage) RemoveFile(ctx context.Context, objectKey string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	s.Removed = append(s.Removed, objectKey)
	return nil
}

package port

import "context"

// ObjectStorage is the durable home for transcoded assets. Key derivation
// (folder prefix, random id, original extension) is the gateway's concern;
// callers only ever see the resulting public URL or the object key embedded
// in it.
type ObjectStorage interface {
	InitBucket(bucket string) error
	// UploadFile pushes a local file and returns its public URL.
	UploadFile(ctx context.Context, localPath, contentType string) (string, error)
	RemoveFile(ctx context.Context, objectKey string) error
}

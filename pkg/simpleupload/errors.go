package simpleupload

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrMissingFileName indicates an upload request without a file name
	ErrMissingFileName = errors.New("file name is required")

	// ErrMissingBody indicates an upload request without a body reader
	ErrMissingBody = errors.New("upload body is required")

	// ErrPrepareFailed indicates the prepare step was rejected by the service
	ErrPrepareFailed = errors.New("prepare request failed")

	// ErrTransferFailed indicates the byte transfer to the storage location failed
	ErrTransferFailed = errors.New("file transfer failed")

	// ErrObjectNotFound indicates an object was not found in a storage backend
	ErrObjectNotFound = errors.New("object not found")
)

// UploadError represents an error during an upload operation
type UploadError struct {
	FileKey string
	Op      string
	Err     error
}

func (e *UploadError) Error() string {
	if e.FileKey == "" {
		return fmt.Sprintf("upload operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("upload operation %s failed for file key %s: %v", e.Op, e.FileKey, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

package simpleupload

import (
	"io"

	"github.com/google/uuid"
)

// UploadRequest describes a single upload attempt
type UploadRequest struct {
	// FileName is the original file name; required.
	FileName string

	// ContentType overrides the MIME type; derived from the file
	// extension when empty.
	ContentType string

	// Seed makes the derived file key unique per attempt. When empty a
	// random seed is generated with NewSeed. Collision avoidance is the
	// caller's responsibility when supplying seeds directly.
	Seed string

	// Size is the file size in bytes; sent to the service as metadata
	// when positive.
	Size int64

	// Body supplies the file bytes; required.
	Body io.Reader
}

// UploadResult describes a completed upload
type UploadResult struct {
	// FileKey identifies the uploaded object in the remote storage system.
	FileKey string

	// DownloadURL is the service-provided location for retrieving the
	// file, when the service returns one.
	DownloadURL string

	// ContentType is the MIME type the file was uploaded with.
	ContentType string
}

// PrepareResponse is the service's answer to a signed prepare request: the
// storage location the file bytes must be transferred to.
type PrepareResponse struct {
	FileKey      string            `json:"file_key"`
	UploadURL    string            `json:"upload_url"`
	UploadMethod string            `json:"upload_method,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	DownloadURL  string            `json:"download_url,omitempty"`
	ExpiresIn    int               `json:"expires_in,omitempty"`
}

// NewSeed returns a per-attempt seed: a random token joined with the
// original file name. The token makes repeated uploads of the same file
// derive distinct file keys.
func NewSeed(fileName string) string {
	return uuid.NewString() + "-" + fileName
}

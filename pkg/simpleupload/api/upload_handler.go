// Package api provides the HTTP surface of the reference upload server.
//
// The server validates the same HMAC-signed URLs the SDK client produces,
// so the full two-step protocol can be exercised end to end: a signed
// POST to /files/{fileKey} answers with a signed PUT location under
// /blobs/, and the blob endpoints move bytes in and out of a BlobStore.
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/signing"
)

// Handlers serves the prepare and blob-transfer endpoints of the upload protocol
type Handlers struct {
	store            simpleupload.BlobStore
	signer           *signing.Signer
	basePath         string
	uploadExpiration time.Duration
}

// Option is a functional option for configuring Handlers
type Option func(*Handlers)

// WithBasePath sets the path prefix the handlers are mounted under.
// Signed blob URLs embed this prefix, so it must match the mount point.
// Default is "/api/v1".
func WithBasePath(basePath string) Option {
	return func(h *Handlers) {
		h.basePath = basePath
	}
}

// WithUploadExpiration sets how long issued blob URLs remain valid
// Default is 15 minutes
func WithUploadExpiration(d time.Duration) Option {
	return func(h *Handlers) {
		h.uploadExpiration = d
	}
}

// NewHandlers creates upload handlers over the given blob store and signer
func NewHandlers(store simpleupload.BlobStore, signer *signing.Signer, opts ...Option) *Handlers {
	h := &Handlers{
		store:            store,
		signer:           signer,
		basePath:         "/api/v1",
		uploadExpiration: 15 * time.Minute,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Routes returns the router for the upload endpoints. Every route is
// wrapped in signature validation; unsigned requests never reach a
// handler.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return signing.ValidateMiddlewareWithSigner(h.signer, next)
		})
		r.Post("/files/{fileKey}", h.HandlePrepare)
		r.Put("/blobs/*", h.HandleUploadBlob)
		r.Get("/blobs/*", h.HandleDownloadBlob)
	})

	return r
}

// HandlePrepare answers a signed prepare request with the storage
// location for the file bytes: a signed PUT URL plus a signed download
// URL for later retrieval.
func (h *Handlers) HandlePrepare(w http.ResponseWriter, r *http.Request) {
	fileKey := chi.URLParam(r, "fileKey")
	if fileKey == "" {
		writeError(w, r, http.StatusBadRequest, "missing_file_key", "file key is required in URL path")
		return
	}

	blobPath := h.basePath + "/blobs/" + fileKey

	uploadURL, err := h.signer.SignURL(blobPath, h.uploadExpiration)
	if err != nil {
		slog.Error("Failed to sign upload URL", "file_key", fileKey, "err", err)
		writeError(w, r, http.StatusInternalServerError, "signing_failed", "could not issue upload URL")
		return
	}

	downloadURL, err := h.signer.SignURL(blobPath, h.uploadExpiration)
	if err != nil {
		slog.Error("Failed to sign download URL", "file_key", fileKey, "err", err)
		writeError(w, r, http.StatusInternalServerError, "signing_failed", "could not issue download URL")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, simpleupload.PrepareResponse{
		FileKey:      fileKey,
		UploadURL:    uploadURL,
		UploadMethod: http.MethodPut,
		DownloadURL:  downloadURL,
		ExpiresIn:    int(h.uploadExpiration.Seconds()),
	})
}

// HandleUploadBlob receives the file bytes of a prepared upload.
// URL format: PUT {basePath}/blobs/{fileKey}?expires=...&hmac-sha256=...
func (h *Handlers) HandleUploadBlob(w http.ResponseWriter, r *http.Request) {
	objectKey := chi.URLParam(r, "*")
	if objectKey == "" {
		writeError(w, r, http.StatusBadRequest, "missing_object_key", "object key is required in URL path")
		return
	}

	if err := h.store.Upload(r.Context(), objectKey, r.Body); err != nil {
		slog.Error("Blob upload failed", "object_key", objectKey, "err", err)
		writeError(w, r, http.StatusInternalServerError, "upload_failed", "failed to store file")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleDownloadBlob streams a stored blob back to the caller.
// URL format: GET {basePath}/blobs/{fileKey}?expires=...&hmac-sha256=...
func (h *Handlers) HandleDownloadBlob(w http.ResponseWriter, r *http.Request) {
	objectKey := chi.URLParam(r, "*")
	if objectKey == "" {
		writeError(w, r, http.StatusBadRequest, "missing_object_key", "object key is required in URL path")
		return
	}

	reader, err := h.store.Download(r.Context(), objectKey)
	if err != nil {
		if errors.Is(err, simpleupload.ErrObjectNotFound) {
			writeError(w, r, http.StatusNotFound, "object_not_found", "no such object")
			return
		}
		slog.Error("Blob download failed", "object_key", objectKey, "err", err)
		writeError(w, r, http.StatusInternalServerError, "download_failed", "failed to read file")
		return
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	if meta, err := h.store.GetObjectMeta(r.Context(), objectKey); err == nil && meta.ContentType != "" {
		contentType = meta.ContentType
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("Blob download stream interrupted", "object_key", objectKey, "err", err)
	}
}

// errorResponse is the JSON body for failed requests
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Code: code, Message: message})
}

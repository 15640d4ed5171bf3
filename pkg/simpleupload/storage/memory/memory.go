// Package memory provides an in-memory BlobStore, used by tests and
// local development of the reference upload server.
package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// Backend is an in-memory implementation of the simpleupload.BlobStore interface
type Backend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates a new in-memory storage backend
func New() simpleupload.BlobStore {
	return &Backend{
		blobs: make(map[string][]byte),
	}
}

// Upload stores the blob bytes under the given key, replacing any
// previous content.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.blobs[objectKey] = data
	return nil
}

// GetUploadURL returns a URL for uploading content
// In-memory blobs have no addressable URL; the server issues its own
func (b *Backend) GetUploadURL(ctx context.Context, objectKey string) (string, error) {
	return "", errors.New("direct upload required for memory backend")
}

// GetDownloadURL returns a URL for downloading content
// In-memory blobs have no addressable URL; the server issues its own
func (b *Backend) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	return "", errors.New("direct download required for memory backend")
}

// Download returns a reader over the stored blob bytes
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[objectKey]
	if !exists {
		return nil, simpleupload.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the blob
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blobs[objectKey]; !exists {
		return simpleupload.ErrObjectNotFound
	}

	delete(b.blobs, objectKey)
	return nil
}

// GetObjectMeta retrieves metadata for a stored blob
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*simpleupload.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[objectKey]
	if !exists {
		return nil, simpleupload.ErrObjectNotFound
	}

	return &simpleupload.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: "application/octet-stream",
	}, nil
}

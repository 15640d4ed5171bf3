package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/api"
	"github.com/tendant/simple-upload/pkg/simpleupload/signing"
	memorystorage "github.com/tendant/simple-upload/pkg/simpleupload/storage/memory"
)

const testSecret = "test-api-key-0123456789abcdef"

func newServer(t *testing.T) (*httptest.Server, *signing.Signer, simpleupload.BlobStore) {
	t.Helper()

	store := memorystorage.New()
	signer := signing.New(signing.WithSecretKey(testSecret))
	handlers := api.NewHandlers(store, signer)

	r := chi.NewRouter()
	r.Mount("/api/v1", handlers.Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, signer, store
}

func TestHandlePrepare(t *testing.T) {
	server, signer, _ := newServer(t)

	signed, err := signer.SignURL("/api/v1/files/abc123?fileName=a.txt&contentType=text%2Fplain", 15*time.Minute)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+signed, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var prep simpleupload.PrepareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prep))

	assert.Equal(t, "abc123", prep.FileKey)
	assert.Equal(t, http.MethodPut, prep.UploadMethod)
	assert.Contains(t, prep.UploadURL, "/api/v1/blobs/abc123")
	assert.Contains(t, prep.UploadURL, "hmac-sha256=")
	assert.NotEmpty(t, prep.DownloadURL)
	assert.Equal(t, int((15 * time.Minute).Seconds()), prep.ExpiresIn)

	// The issued upload URL is itself a valid signed URL.
	assert.NoError(t, signer.Validate(prep.UploadURL))
}

func TestHandlePrepareUnsigned(t *testing.T) {
	server, _, _ := newServer(t)

	resp, err := http.Post(server.URL+"/api/v1/files/abc123?fileName=a.txt", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBlobRoundTrip(t *testing.T) {
	server, signer, store := newServer(t)

	uploadURL, err := signer.SignURL("/api/v1/blobs/abc123", time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, server.URL+uploadURL, strings.NewReader("blob bytes"))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bytes landed in the store.
	meta, err := store.GetObjectMeta(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(len("blob bytes")), meta.Size)

	// And come back out through the signed download endpoint.
	downloadURL, err := signer.SignURL("/api/v1/blobs/abc123", time.Minute)
	require.NoError(t, err)

	getResp, err := http.Get(server.URL + downloadURL)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestBlobDownloadNotFound(t *testing.T) {
	server, signer, _ := newServer(t)

	downloadURL, err := signer.SignURL("/api/v1/blobs/missing", time.Minute)
	require.NoError(t, err)

	resp, err := http.Get(server.URL + downloadURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "object_not_found", errResp.Code)
}

func TestBlobUploadExpiredURL(t *testing.T) {
	server, signer, _ := newServer(t)

	uploadURL, err := signer.SignURL("/api/v1/blobs/abc123", -1*time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, server.URL+uploadURL, strings.NewReader("late"))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

package simpleupload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tendant/simple-upload/pkg/simpleupload/filekey"
	"github.com/tendant/simple-upload/pkg/simpleupload/signing"
)

// Client performs two-step uploads against a signed file-upload service.
// It is safe for concurrent use: all state is set at construction time.
type Client struct {
	baseURL       string
	applicationID string
	httpClient    *http.Client
	codec         *filekey.Codec
	signer        *signing.Signer
	urlExpiration time.Duration
}

// ClientOption is a functional option for configuring a Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithCodec sets a custom file key codec (alphabet, prefix length)
func WithCodec(codec *filekey.Codec) ClientOption {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithURLExpiration sets how long signed prepare URLs remain valid
// Default is 15 minutes
func WithURLExpiration(d time.Duration) ClientOption {
	return func(c *Client) {
		c.urlExpiration = d
	}
}

// NewClient creates an upload client for the service at baseURL,
// authenticating as applicationID with the shared secretKey.
func NewClient(baseURL, applicationID, secretKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if applicationID == "" {
		return nil, filekey.ErrEmptyApplicationID
	}
	if secretKey == "" {
		return nil, signing.ErrNoSecretKey
	}

	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		applicationID: applicationID,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // Long timeout for large uploads
		},
		codec:         filekey.New(),
		signer:        signing.New(signing.WithSecretKey(secretKey)),
		urlExpiration: 15 * time.Minute,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Upload runs the complete two-step workflow: derive the file key, POST a
// signed prepare request, then PUT the file bytes to the storage location
// the service returned. Each step is a single attempt; callers who want
// retries wrap Upload themselves.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.FileName == "" {
		return nil, &UploadError{Op: "validate", Err: ErrMissingFileName}
	}
	if req.Body == nil {
		return nil, &UploadError{Op: "validate", Err: ErrMissingBody}
	}

	seed := req.Seed
	if seed == "" {
		seed = NewSeed(req.FileName)
	}

	fileKey, err := c.codec.GenerateFileKey(c.applicationID, seed)
	if err != nil {
		return nil, &UploadError{Op: "derive_key", Err: err}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = ContentTypeForFile(req.FileName)
	}

	prep, err := c.prepare(ctx, fileKey, req.FileName, contentType, req.Size)
	if err != nil {
		return nil, &UploadError{FileKey: fileKey, Op: "prepare", Err: err}
	}

	if err := c.transfer(ctx, prep, req, contentType); err != nil {
		return nil, &UploadError{FileKey: fileKey, Op: "transfer", Err: err}
	}

	return &UploadResult{
		FileKey:     fileKey,
		DownloadURL: prep.DownloadURL,
		ContentType: contentType,
	}, nil
}

// prepare performs the first step: a signed POST announcing the upload,
// answered with the storage location for the bytes.
func (c *Client) prepare(ctx context.Context, fileKey, fileName, contentType string, size int64) (*PrepareResponse, error) {
	query := url.Values{}
	query.Set("fileName", fileName)
	query.Set("contentType", contentType)
	if size > 0 {
		query.Set("fileSize", strconv.FormatInt(size, 10))
	}

	// The signature covers this exact string; it must reach the wire
	// unmodified.
	prepareURL := "/api/v1/files/" + fileKey + "?" + query.Encode()

	signedURL, err := c.signer.SignURL(prepareURL, c.urlExpiration)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+signedURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrPrepareFailed, resp.Status)
	}

	var prep PrepareResponse
	if err := json.NewDecoder(resp.Body).Decode(&prep); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrPrepareFailed, err)
	}
	if prep.UploadURL == "" {
		return nil, fmt.Errorf("%w: response carries no upload URL", ErrPrepareFailed)
	}

	return &prep, nil
}

// transfer performs the second step: moving the file bytes to the storage
// location from the prepare response.
func (c *Client) transfer(ctx context.Context, prep *PrepareResponse, req UploadRequest, contentType string) error {
	target := prep.UploadURL
	if strings.HasPrefix(target, "/") {
		target = c.baseURL + target
	}

	method := prep.UploadMethod
	if method == "" {
		method = http.MethodPut
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, req.Body)
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", contentType)
	for k, v := range prep.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Size > 0 {
		httpReq.ContentLength = req.Size
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %s", ErrTransferFailed, resp.Status)
	}

	return nil
}

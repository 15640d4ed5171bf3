package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultSignatureParam is the query parameter name under which the
// caller appends the signature. The parameter name doubles as the scheme
// identifier, so compatible servers know which MAC to recompute.
const DefaultSignatureParam = "hmac-sha256"

// Sign computes the HMAC-SHA256 of payload keyed by secret and returns it
// as lowercase hex, two characters per digest byte. The signature is
// valid only for a byte-exact identical payload: reordering query
// parameters, changing case, or touching whitespace all invalidate it.
//
// Signing cannot fail: Go strings are already byte sequences, so the
// UTF-8 encoding failure mode of other runtimes does not exist here.
func Sign(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify recomputes the signature over payload with secret and compares
// it against the supplied signature. The comparison is case-insensitive
// (externally supplied hex may be uppercase) and constant-time. Verify is
// total: it never returns an error, a malformed signature is simply false.
func Verify(signature, payload, secret string) bool {
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(strings.ToLower(signature)), []byte(expected))
}

// Signer produces and validates signed, time-boxed URLs
type Signer struct {
	secretKey         []byte
	defaultExpiration time.Duration
	signatureParam    string
}

// New creates a new Signer with the given options
func New(opts ...Option) *Signer {
	s := &Signer{
		defaultExpiration: 1 * time.Hour,
		signatureParam:    DefaultSignatureParam,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignURL appends an expiration timestamp to rawURL, signs the resulting
// string byte-exactly, and appends the signature as the final query
// parameter.
//
// Example:
//
//	signed, err := signer.SignURL("/api/v1/files/abc?fileName=a.txt", 15*time.Minute)
//	// Returns: /api/v1/files/abc?fileName=a.txt&expires=1696789012&hmac-sha256=ab12...
//
// The caller must hand the signed URL to its transport unmodified: any
// re-encoding or parameter reordering after signing invalidates it.
func (s *Signer) SignURL(rawURL string, expiresIn time.Duration) (string, error) {
	if len(s.secretKey) == 0 {
		return "", ErrNoSecretKey
	}

	if expiresIn == 0 {
		expiresIn = s.defaultExpiration
	}

	expiresAt := time.Now().Add(expiresIn).Unix()

	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	payload := fmt.Sprintf("%s%sexpires=%d", rawURL, separator, expiresAt)

	signature := Sign(payload, string(s.secretKey))

	return fmt.Sprintf("%s&%s=%s", payload, s.signatureParam, signature), nil
}

// Validate checks the signature and expiration of a signed URL. The
// signature parameter must be the final query parameter, exactly where
// SignURL placed it; the remainder of the URL is verified byte-exactly
// without re-parsing or re-encoding the query string.
func (s *Signer) Validate(rawURL string) error {
	if len(s.secretKey) == 0 {
		return ErrNoSecretKey
	}

	payload, signature, err := splitSignature(rawURL, s.signatureParam)
	if err != nil {
		return err
	}

	expiresAt, err := extractExpires(payload)
	if err != nil {
		return err
	}

	if time.Now().Unix() > expiresAt {
		return ErrExpired
	}

	if !Verify(signature, payload, string(s.secretKey)) {
		return ErrInvalidSignature
	}

	return nil
}

// ValidateRequest validates the signature and expiration of an incoming
// HTTP request. It uses the request URI exactly as received, so the check
// covers the same bytes the client signed.
func (s *Signer) ValidateRequest(r *http.Request) error {
	rawURL := r.RequestURI
	if rawURL == "" {
		rawURL = r.URL.RequestURI()
	}
	return s.Validate(rawURL)
}

// IsEnabled returns true if the signer has a secret key configured
func (s *Signer) IsEnabled() bool {
	return len(s.secretKey) > 0
}

// splitSignature splits a signed URL into the signed payload and the
// signature value. The signature parameter must be last.
func splitSignature(rawURL, param string) (payload, signature string, err error) {
	marker := "&" + param + "="
	idx := strings.LastIndex(rawURL, marker)
	if idx == -1 {
		marker = "?" + param + "="
		idx = strings.LastIndex(rawURL, marker)
	}
	if idx == -1 {
		return "", "", ErrMissingSignature
	}

	payload = rawURL[:idx]
	signature = rawURL[idx+len(marker):]

	if signature == "" || strings.Contains(signature, "&") {
		return "", "", ErrMissingSignature
	}

	return payload, signature, nil
}

// extractExpires pulls the expires timestamp out of the signed payload.
func extractExpires(payload string) (int64, error) {
	idx := strings.Index(payload, "?")
	if idx == -1 {
		return 0, ErrMissingExpiration
	}

	for _, pair := range strings.Split(payload[idx+1:], "&") {
		value, ok := strings.CutPrefix(pair, "expires=")
		if !ok {
			continue
		}
		expiresAt, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
		}
		return expiresAt, nil
	}

	return 0, ErrMissingExpiration
}

package signing

import "time"

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithSecretKey sets the shared secret used for HMAC signing
// The key should be at least 32 bytes for security
func WithSecretKey(key string) Option {
	return func(s *Signer) {
		s.secretKey = []byte(key)
	}
}

// WithDefaultExpiration sets the default expiration for signed URLs
// Default is 1 hour if not specified
func WithDefaultExpiration(duration time.Duration) Option {
	return func(s *Signer) {
		s.defaultExpiration = duration
	}
}

// WithSignatureParam sets the query parameter name carrying the signature.
// Default is "hmac-sha256".
func WithSignatureParam(name string) Option {
	return func(s *Signer) {
		if name != "" {
			s.signatureParam = name
		}
	}
}

// Package signing implements HMAC-SHA256 authentication for time-boxed
// upload URLs.
//
// A signature covers the exact byte string it was produced over, which by
// convention is the fully assembled URL before the signature parameter is
// appended. Both sides of the protocol must treat that string as opaque
// bytes: reordering or re-encoding query parameters between signing and
// sending invalidates the signature.
//
// # Basic Usage
//
// Sign a URL:
//
//	signer := signing.New(signing.WithSecretKey("your-secret-key"))
//	signed, err := signer.SignURL("/api/v1/files/"+fileKey+"?fileName=a.txt", 15*time.Minute)
//
// Validate an incoming request:
//
//	if err := signer.ValidateRequest(r); err != nil {
//	    // Invalid signature or expired URL
//	}
//
// Or use the raw primitives directly:
//
//	sig := signing.Sign(payload, secret)            // 64-char lowercase hex
//	ok := signing.Verify(sig, payload, secret)      // total, never panics
//
// # HTTP Middleware
//
// Wrap upload endpoints so only signed requests reach them:
//
//	mux.Handle("/api/v1/blobs/", signing.ValidateMiddleware(secretKey, blobHandler))
//
// # Security Notes
//
//   - Use strong secret keys (minimum 32 bytes, use crypto/rand)
//   - Verification is constant-time (hmac.Equal) and tolerates uppercase hex
//   - Set short expirations; a leaked signed URL is valid until it expires
//   - Always use HTTPS in production
package signing

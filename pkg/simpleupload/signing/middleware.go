package signing

import (
	"log"
	"net/http"
)

// ValidateMiddleware returns HTTP middleware that validates signed URL
// signatures with a signer built from the given secret key.
//
// Example:
//
//	http.Handle("/api/v1/blobs/", signing.ValidateMiddleware(secretKey, blobHandler))
func ValidateMiddleware(secretKey string, next http.Handler) http.Handler {
	return ValidateMiddlewareWithSigner(New(WithSecretKey(secretKey)), next)
}

// ValidateMiddlewareWithSigner returns HTTP middleware using a
// pre-configured Signer. If the signer has no secret key, requests pass
// through unvalidated.
//
// Example:
//
//	signer := signing.New(
//	    signing.WithSecretKey(secretKey),
//	    signing.WithDefaultExpiration(30*time.Minute),
//	)
//	http.Handle("/api/v1/blobs/", signing.ValidateMiddlewareWithSigner(signer, blobHandler))
func ValidateMiddlewareWithSigner(signer *Signer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !signer.IsEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		if err := signer.ValidateRequest(r); err != nil {
			handleValidationError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleValidationError writes an appropriate HTTP error response based on the validation error
func handleValidationError(w http.ResponseWriter, err error) {
	switch err {
	case ErrMissingSignature:
		http.Error(w, "Missing signature parameter", http.StatusUnauthorized)
	case ErrMissingExpiration:
		http.Error(w, "Missing expires parameter", http.StatusUnauthorized)
	case ErrInvalidExpiration:
		http.Error(w, "Invalid expires parameter", http.StatusBadRequest)
	case ErrExpired:
		http.Error(w, "Signed URL has expired", http.StatusForbidden)
	case ErrInvalidSignature:
		http.Error(w, "Invalid signature", http.StatusForbidden)
	default:
		log.Printf("signing: validation error: %v", err)
		http.Error(w, "Authentication failed", http.StatusForbidden)
	}
}

package signing

import "errors"

// Signature validation errors
var (
	// ErrNoSecretKey is returned when attempting to sign or validate URLs without a configured secret key
	ErrNoSecretKey = errors.New("signing: no secret key configured")

	// ErrMissingSignature is returned when the signature query parameter is missing or not last
	ErrMissingSignature = errors.New("signing: missing signature parameter")

	// ErrMissingExpiration is returned when the expires query parameter is missing
	ErrMissingExpiration = errors.New("signing: missing expires parameter")

	// ErrInvalidExpiration is returned when the expires parameter cannot be parsed
	ErrInvalidExpiration = errors.New("signing: invalid expires parameter")

	// ErrExpired is returned when the signed URL has expired
	ErrExpired = errors.New("signing: URL has expired")

	// ErrInvalidSignature is returned when the signature does not match the payload
	ErrInvalidSignature = errors.New("signing: invalid signature")
)

// IsAuthError returns true if the error is a signature validation error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrMissingExpiration) ||
		errors.Is(err, ErrInvalidExpiration) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidSignature)
}

// Package filekey derives deterministic, URL-safe file keys from an
// application ID and a caller-supplied seed.
//
// A file key is the concatenation of a fixed-length encoding of the
// application ID and the raw URL-safe base64 of the seed bytes. The
// encoding is deterministic: the same (application ID, seed) pair always
// yields the same key. Uniqueness therefore lives entirely in the seed;
// callers who need per-attempt keys must bake randomness into it (see
// simpleupload.NewSeed).
//
// The application ID encoding is obfuscation by convention, not a
// security boundary: it shuffles a fixed alphabet with a non-cryptographic
// hash of the ID. Keep it behind the Codec type so a future implementation
// can swap the algorithm without touching callers.
package filekey

import (
	"encoding/base64"
	"errors"
)

// DefaultAlphabet is the 62-character alphanumeric alphabet used when no
// custom alphabet is configured. Every character is safe in a URL path
// segment without percent-encoding.
const DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultMinLength is the fixed length of the encoded application ID
// prefix when no custom length is configured.
const DefaultMinLength = 12

// ErrEmptyApplicationID is returned when an empty application ID is
// passed to the codec. Empty IDs are rejected rather than normalized so
// that a misconfigured client fails loudly instead of silently producing
// keys under a shared prefix.
var ErrEmptyApplicationID = errors.New("filekey: application id is empty")

// Codec encodes application IDs and derives file keys. The zero value is
// not usable; construct with New.
type Codec struct {
	alphabet  string
	minLength int
}

// New creates a Codec with the given options. Defaults: DefaultAlphabet
// and DefaultMinLength.
func New(opts ...Option) *Codec {
	c := &Codec{
		alphabet:  DefaultAlphabet,
		minLength: DefaultMinLength,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// EncodeApplicationID encodes an application ID as a fixed-length string
// over a permutation of the codec's alphabet. The permutation itself is
// keyed by the application ID, so distinct IDs almost always produce
// prefixes that differ in both digits and alphabet ordering.
func (c *Codec) EncodeApplicationID(appID string) (string, error) {
	if appID == "" {
		return "", ErrEmptyApplicationID
	}

	seed := encodingSeed(hashString(appID))
	shuffled := shuffleAlphabet(c.alphabet, seed)
	encoded := encodeBase(seed, shuffled)

	// Left-pad with the permuted alphabet's zero digit up to the fixed length.
	for len(encoded) < c.minLength {
		encoded = string(shuffled[0]) + encoded
	}

	return encoded, nil
}

// GenerateFileKey derives the file key for an upload attempt: the encoded
// application ID followed directly by the raw URL-safe base64 of the seed
// bytes (no separator, no padding). It fails only when the application ID
// is empty.
func (c *Codec) GenerateFileKey(appID, seed string) (string, error) {
	prefix, err := c.EncodeApplicationID(appID)
	if err != nil {
		return "", err
	}

	return prefix + base64.RawURLEncoding.EncodeToString([]byte(seed)), nil
}

// Alphabet returns the configured base alphabet.
func (c *Codec) Alphabet() string {
	return c.alphabet
}

// MinLength returns the configured fixed prefix length.
func (c *Codec) MinLength() int {
	return c.minLength
}

// hashString computes the djb2-XOR hash of the UTF-8 bytes of s,
// truncated to 32 bits at each step.
func hashString(s string) uint32 {
	var acc uint32 = 5381
	for _, b := range []byte(s) {
		acc = ((acc << 5) + acc) ^ uint32(b)
	}
	return acc
}

// encodingSeed reinterprets a 32-bit hash as a signed integer and takes
// its absolute value in 64-bit arithmetic. Widening before negating means
// the minimum int32 (0x80000000) maps to 2^31 instead of overflowing back
// to itself.
func encodingSeed(hash uint32) uint64 {
	v := int64(int32(hash))
	if v < 0 {
		v = -v
	}
	return uint64(v)
}

// shuffleAlphabet permutes the alphabet with a Fisher-Yates-style pass
// driven by a single scalar seed. Indices must be visited in ascending
// order; the permutation is order-sensitive.
func shuffleAlphabet(alphabet string, seed uint64) []byte {
	shuffled := []byte(alphabet)
	n := uint64(len(shuffled))

	for i := uint64(0); i < n; i++ {
		j := ((seed % (i + 1)) + i) % n
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// encodeBase renders value in the base of the given alphabet, most
// significant digit first. Zero encodes as the alphabet's first character.
func encodeBase(value uint64, alphabet []byte) string {
	base := uint64(len(alphabet))
	if value == 0 {
		return string(alphabet[0])
	}

	var digits []byte
	for value > 0 {
		digits = append(digits, alphabet[value%base])
		value /= base
	}

	// Reverse: digits were collected least significant first.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return string(digits)
}

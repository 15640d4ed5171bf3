package signing

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

var lowercaseHex = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSign(t *testing.T) {
	sig := Sign("https://example.com/upload?file=test.txt", "test-api-key")

	if !lowercaseHex.MatchString(sig) {
		t.Errorf("expected 64-character lowercase hex signature, got %q", sig)
	}

	// Byte-exact: the same inputs always produce the same signature.
	if again := Sign("https://example.com/upload?file=test.txt", "test-api-key"); again != sig {
		t.Errorf("signing is not deterministic: %s vs %s", sig, again)
	}
}

func TestSignSensitivity(t *testing.T) {
	payload := "https://example.com/upload?file=test.txt"
	secret := "test-api-key"
	sig := Sign(payload, secret)

	tests := []struct {
		name    string
		payload string
		secret  string
	}{
		{
			name:    "single character change in payload",
			payload: "https://example.com/upload?file=test.txT",
			secret:  secret,
		},
		{
			name:    "single character change in secret",
			payload: payload,
			secret:  "test-api-keY",
		},
		{
			name:    "reordered query parameters",
			payload: "https://example.com/upload?a=1&b=2",
			secret:  secret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Sign(tt.payload, tt.secret) == sig {
				t.Error("expected a different signature")
			}
			if Verify(sig, tt.payload, tt.secret) {
				t.Error("expected verification to fail for the original signature")
			}
		})
	}
}

func TestVerify(t *testing.T) {
	payload := "https://example.com/upload?file=test.txt"
	secret := "test-api-key"
	sig := Sign(payload, secret)

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{
			name:      "round trip",
			signature: sig,
			want:      true,
		},
		{
			name:      "uppercase hex is accepted",
			signature: strings.ToUpper(sig),
			want:      true,
		},
		{
			name:      "all-zero signature",
			signature: strings.Repeat("0", 64),
			want:      false,
		},
		{
			name:      "empty signature",
			signature: "",
			want:      false,
		},
		{
			name:      "malformed signature",
			signature: "not-hex-at-all",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.signature, payload, secret); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.signature, got, tt.want)
			}
		})
	}
}

func TestSignerSignURL(t *testing.T) {
	signer := New(WithSecretKey("test-api-key"))

	t.Run("appends expires then signature", func(t *testing.T) {
		signed, err := signer.SignURL("/api/v1/files/abc?fileName=a.txt", 15*time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(signed, "&expires=") {
			t.Errorf("expected expires parameter in %s", signed)
		}
		idx := strings.LastIndex(signed, "&hmac-sha256=")
		if idx == -1 {
			t.Fatalf("expected hmac-sha256 parameter in %s", signed)
		}
		// The signature must cover everything before it, byte-exactly.
		if !Verify(signed[idx+len("&hmac-sha256="):], signed[:idx], "test-api-key") {
			t.Error("signature does not verify against its own payload")
		}
	})

	t.Run("path without query", func(t *testing.T) {
		signed, err := signer.SignURL("/api/v1/blobs/abc", 15*time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(signed, "?expires=") {
			t.Errorf("expected expires as first parameter in %s", signed)
		}
		if err := signer.Validate(signed); err != nil {
			t.Errorf("expected signed URL to validate, got %v", err)
		}
	})

	t.Run("no secret key", func(t *testing.T) {
		_, err := New().SignURL("/api/v1/blobs/abc", time.Minute)
		if !errors.Is(err, ErrNoSecretKey) {
			t.Errorf("expected ErrNoSecretKey, got %v", err)
		}
	})
}

func TestSignerValidate(t *testing.T) {
	signer := New(WithSecretKey("test-api-key"))

	signed, err := signer.SignURL("/api/v1/files/abc?fileName=a.txt", 15*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid URL", func(t *testing.T) {
		if err := signer.Validate(signed); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		tampered := strings.Replace(signed, "a.txt", "b.txt", 1)
		if err := signer.Validate(tampered); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := New(WithSecretKey("other-key"))
		if err := other.Validate(signed); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		if err := signer.Validate("/api/v1/files/abc?fileName=a.txt&expires=99999999999"); !errors.Is(err, ErrMissingSignature) {
			t.Errorf("expected ErrMissingSignature, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := signer.SignURL("/api/v1/files/abc", -1*time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		if err := signer.Validate(expired); !errors.Is(err, ErrExpired) {
			t.Errorf("expected ErrExpired, got %v", err)
		}
	})

	t.Run("missing expires", func(t *testing.T) {
		payload := "/api/v1/files/abc"
		raw := payload + "?hmac-sha256=" + Sign(payload, "test-api-key")
		if err := signer.Validate(raw); !errors.Is(err, ErrMissingExpiration) {
			t.Errorf("expected ErrMissingExpiration, got %v", err)
		}
	})

	t.Run("invalid expires", func(t *testing.T) {
		payload := "/api/v1/files/abc?expires=soon"
		raw := payload + "&hmac-sha256=" + Sign(payload, "test-api-key")
		if err := signer.Validate(raw); !errors.Is(err, ErrInvalidExpiration) {
			t.Errorf("expected ErrInvalidExpiration, got %v", err)
		}
	})

	t.Run("no secret key", func(t *testing.T) {
		if err := New().Validate(signed); !errors.Is(err, ErrNoSecretKey) {
			t.Errorf("expected ErrNoSecretKey, got %v", err)
		}
	})
}

func TestSignerCustomSignatureParam(t *testing.T) {
	signer := New(WithSecretKey("test-api-key"), WithSignatureParam("sig"))

	signed, err := signer.SignURL("/api/v1/blobs/abc", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(signed, "&sig=") {
		t.Errorf("expected sig parameter in %s", signed)
	}
	if err := signer.Validate(signed); err != nil {
		t.Errorf("expected signed URL to validate, got %v", err)
	}
}

func TestIsAuthError(t *testing.T) {
	for _, err := range []error{ErrMissingSignature, ErrMissingExpiration, ErrInvalidExpiration, ErrExpired, ErrInvalidSignature} {
		if !IsAuthError(err) {
			t.Errorf("expected %v to be an auth error", err)
		}
	}
	if IsAuthError(ErrNoSecretKey) {
		t.Error("ErrNoSecretKey is a configuration error, not an auth error")
	}
	if IsAuthError(nil) {
		t.Error("nil is not an auth error")
	}
}

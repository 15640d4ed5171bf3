package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient(t *testing.T) {
	t.Run("valid environment", func(t *testing.T) {
		t.Setenv("UPLOAD_BASE_URL", "https://upload.example.com")
		t.Setenv("UPLOAD_APP_ID", "test-app-id")
		t.Setenv("UPLOAD_SECRET_KEY", "test-secret")

		cfg, err := LoadClient()
		require.NoError(t, err)
		assert.Equal(t, "https://upload.example.com", cfg.BaseURL)
		assert.Equal(t, "test-app-id", cfg.ApplicationID)
		assert.Equal(t, 900, cfg.URLExpirySeconds)

		client, err := cfg.BuildClient()
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("missing application id", func(t *testing.T) {
		t.Setenv("UPLOAD_APP_ID", "")
		t.Setenv("UPLOAD_SECRET_KEY", "test-secret")

		_, err := LoadClient()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UPLOAD_APP_ID")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("UPLOAD_APP_ID", "test-app-id")
		t.Setenv("UPLOAD_SECRET_KEY", "")

		_, err := LoadClient()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UPLOAD_SECRET_KEY")
	})
}

func TestLoadServer(t *testing.T) {
	t.Run("defaults to memory storage", func(t *testing.T) {
		t.Setenv("UPLOAD_SECRET_KEY", "test-secret")

		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "memory://", cfg.StorageURL)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("UPLOAD_SECRET_KEY", "")

		_, err := LoadServer()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UPLOAD_SECRET_KEY")
	})
}

func TestBuildBlobStore(t *testing.T) {
	tests := []struct {
		name       string
		storageURL string
		wantErr    bool
	}{
		{
			name:       "memory",
			storageURL: "memory://",
		},
		{
			name:       "filesystem",
			storageURL: "file://" + t.TempDir(),
		},
		{
			name:       "s3 without bucket",
			storageURL: "s3://",
			wantErr:    true,
		},
		{
			name:       "unsupported scheme",
			storageURL: "ftp://somewhere",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{
				Port:       "8080",
				SecretKey:  "test-secret",
				StorageURL: tt.storageURL,
			}

			store, err := cfg.BuildBlobStore()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, store)
		})
	}
}

// Package config loads client and server configuration from the
// environment and builds the corresponding simpleupload values.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tendant/simple-upload/pkg/simpleupload"
	fsstorage "github.com/tendant/simple-upload/pkg/simpleupload/storage/fs"
	memorystorage "github.com/tendant/simple-upload/pkg/simpleupload/storage/memory"
	s3storage "github.com/tendant/simple-upload/pkg/simpleupload/storage/s3"
)

// ClientConfig holds the settings an upload client needs
type ClientConfig struct {
	BaseURL          string `env:"UPLOAD_BASE_URL" env-default:"http://localhost:8080"`
	ApplicationID    string `env:"UPLOAD_APP_ID"`
	SecretKey        string `env:"UPLOAD_SECRET_KEY"`
	URLExpirySeconds int    `env:"UPLOAD_URL_EXPIRY" env-default:"900"`
}

// LoadClient reads client configuration from the environment
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the client configuration
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("UPLOAD_BASE_URL is required")
	}
	if c.ApplicationID == "" {
		return errors.New("UPLOAD_APP_ID is required")
	}
	if c.SecretKey == "" {
		return errors.New("UPLOAD_SECRET_KEY is required")
	}
	return nil
}

// BuildClient creates an upload client from the configuration
func (c *ClientConfig) BuildClient() (*simpleupload.Client, error) {
	return simpleupload.NewClient(c.BaseURL, c.ApplicationID, c.SecretKey,
		simpleupload.WithURLExpiration(time.Duration(c.URLExpirySeconds)*time.Second),
	)
}

// S3Config holds credentials for an S3-compatible storage backend
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

// ServerConfig holds the settings for the reference upload server
//
// STORAGE_URL selects the blob store:
//   - "memory://" - in-memory storage (default)
//   - "file:///path/to/data" - filesystem storage
//   - "s3://bucket" - S3-compatible storage, credentials from AWS_* vars
type ServerConfig struct {
	Port       string `env:"PORT" env-default:"8080"`
	SecretKey  string `env:"UPLOAD_SECRET_KEY"`
	StorageURL string `env:"STORAGE_URL" env-default:"memory://"`
	S3         S3Config
}

// LoadServer reads server configuration from the environment
func LoadServer() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SecretKey == "" {
		return errors.New("UPLOAD_SECRET_KEY is required")
	}
	if c.StorageURL == "" {
		return errors.New("STORAGE_URL is required")
	}
	return nil
}

// BuildBlobStore creates the blob store selected by STORAGE_URL
func (c *ServerConfig) BuildBlobStore() (simpleupload.BlobStore, error) {
	u, err := url.Parse(c.StorageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_URL %q: %w", c.StorageURL, err)
	}

	switch u.Scheme {
	case "memory":
		return memorystorage.New(), nil

	case "file":
		path := u.Path
		if path == "" {
			path = strings.TrimPrefix(c.StorageURL, "file://")
		}
		return fsstorage.New(fsstorage.Config{BaseDir: path})

	case "s3":
		if u.Host == "" {
			return nil, errors.New("s3 STORAGE_URL must name a bucket, e.g. s3://my-bucket")
		}
		return s3storage.New(s3storage.Config{
			Bucket:                 u.Host,
			Region:                 c.S3.Region,
			Endpoint:               c.S3.Endpoint,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: true,
		})

	default:
		return nil, fmt.Errorf("unsupported STORAGE_URL scheme %q (use memory://, file://, or s3://)", u.Scheme)
	}
}

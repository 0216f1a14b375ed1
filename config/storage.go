package config

import "strings"

// Storage backend names.
const (
	StorageTypeS3    = "s3"
	StorageTypeLocal = "local"
)

// StorageConfig selects and configures the resume blob store.
type StorageConfig struct {
	// Type is "s3" (S3 or MinIO) or "local" (filesystem with signed links).
	Type      string `env:"TYPE"       envDefault:"s3"`
	Endpoint  string `env:"ENDPOINT"   envDefault:"localhost:9000"`
	Region    string `env:"REGION"     envDefault:"us-east-1"`
	AccessKey string `env:"ACCESS_KEY" envDefault:""`
	SecretKey string `env:"SECRET_KEY" envDefault:""`
	Bucket    string `env:"BUCKET"     envDefault:"resumes"`
	UseSSL    bool   `env:"USE_SSL"    envDefault:"false"`

	// BasePath is the directory used by the local backend.
	BasePath string `env:"BASE_PATH" envDefault:"./uploads"`
	// SigningKey signs local download links. A random key is used when empty,
	// which invalidates outstanding links on restart.
	SigningKey string `env:"SIGNING_KEY" envDefault:""`
}

// Sanitize normalizes the backend name. An empty name means s3; unknown
// names are left for the blob store constructor to reject.
func (s *StorageConfig) Sanitize() {
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Type == "" {
		s.Type = StorageTypeS3
	}
	s.Bucket = strings.TrimSpace(s.Bucket)
	if s.Bucket == "" {
		s.Bucket = "resumes"
	}
}

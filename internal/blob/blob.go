// Package blob stores resume documents in an object store.
//
// Two backends are provided: an S3-compatible store (MinIO in development)
// and a local filesystem store whose download links are HMAC-signed and
// served by the HTTP layer.
package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/domain/model"
)

// Backend types accepted by New.
const (
	TypeS3    = "s3"
	TypeLocal = "local"
)

const keySuffix = model.ResumeIDSuffix

var (
	// ErrObjectNotFound is returned when the requested object does not exist.
	ErrObjectNotFound = errors.New("blob: object not found")
	// ErrUnavailable wraps any failure talking to the backing store.
	ErrUnavailable = errors.New("blob: storage unavailable")
	// ErrUnsupportedContentType is returned by Put for anything other than a PDF.
	ErrUnsupportedContentType = errors.New("blob: unsupported content type")
	// ErrInvalidTTL is returned for negative link lifetimes.
	ErrInvalidTTL = errors.New("blob: link ttl must be positive")
)

// Config selects and configures a backend.
type Config struct {
	Type      string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// Local backend only.
	BasePath   string
	BaseURL    string
	SigningKey string
}

// New creates the backend named by cfg.Type. The S3 backend creates its
// bucket when missing.
func New(ctx context.Context, cfg Config) (core.BlobStore, error) {
	switch cfg.Type {
	case TypeS3, "":
		s, err := NewS3Store(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case TypeLocal:
		return NewLocalStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// NormalizeTTL applies the default lifetime to zero and clamps to the
// longest lifetime an S3 presigned URL may have.
func NormalizeTTL(ttl time.Duration) (time.Duration, error) {
	if ttl < 0 {
		return 0, ErrInvalidTTL
	}
	return model.ClampResumeLinkTTL(ttl), nil
}

// NewKey returns a fresh object key.
func NewKey() string {
	return uuid.NewString() + keySuffix
}

// ValidKey reports whether id has the shape produced by NewKey.
func ValidKey(id string) bool {
	return model.ValidResumeID(id)
}

func checkContentType(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct != model.ResumeContentType {
		return fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

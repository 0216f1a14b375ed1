package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResumeContentType is the only media type accepted for resume uploads.
const ResumeContentType = "application/pdf"

// ResumeIDSuffix ends every resume id. The id doubles as the object key.
const ResumeIDSuffix = ".pdf"

const (
	// DefaultResumeLinkTTL is used when a download link is requested without an expiration.
	DefaultResumeLinkTTL = time.Hour
	// MaxResumeLinkTTL is the longest lifetime an S3 presigned URL may carry.
	MaxResumeLinkTTL = 7 * 24 * time.Hour
)

// ResumeLink is a time-bounded download URL for a stored resume.
type ResumeLink struct {
	ResumeID  string    `json:"resume_id"`
	URL       string    `json:"download_link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ClampResumeLinkTTL applies DefaultResumeLinkTTL to zero and caps the
// result at MaxResumeLinkTTL. Negative values are returned unchanged.
func ClampResumeLinkTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl == 0:
		return DefaultResumeLinkTTL
	case ttl > MaxResumeLinkTTL:
		return MaxResumeLinkTTL
	default:
		return ttl
	}
}

// ValidResumeID reports whether id has the canonical "<uuid>.pdf" shape
// assigned at upload.
func ValidResumeID(id string) bool {
	base, ok := strings.CutSuffix(id, ResumeIDSuffix)
	if !ok || len(base) != 36 {
		return false
	}
	_, err := uuid.Parse(base)
	return err == nil
}

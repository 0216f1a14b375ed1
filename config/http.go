package config

import "time"

const (
	defaultMaxUploadBytes int64 = 10 << 20
	maxMaxUploadBytes     int64 = 100 << 20
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the externally reachable URL of the application
	// (e.g., "https://board.example.com"). Local-storage download links are built from it.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// MaxUploadBytes bounds the size of a resume upload request.
	MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" envDefault:"10485760"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.MaxUploadBytes <= 0 {
		h.MaxUploadBytes = defaultMaxUploadBytes
	}
	if h.MaxUploadBytes > maxMaxUploadBytes {
		h.MaxUploadBytes = maxMaxUploadBytes
	}
	if h.ReadHeaderTimeout <= 0 {
		h.ReadHeaderTimeout = 10 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/cryptoutil"
)

// FilesPath is the HTTP route prefix that serves local blobs.
const FilesPath = "/files/"

var (
	// ErrLinkExpired is returned by VerifyLink once the expiry has passed.
	ErrLinkExpired = errors.New("blob: link expired")
	// ErrLinkInvalid is returned by VerifyLink for malformed or forged links.
	ErrLinkInvalid = errors.New("blob: link invalid")
)

// LocalStore implements core.BlobStore on a filesystem directory.
type LocalStore struct {
	basePath string
	baseURL  string
	signer   cryptoutil.Signer
	now      func() time.Time
}

var _ core.BlobStore = (*LocalStore)(nil)

// NewLocalStore creates the base directory if needed. Without a signing key
// a random one is generated.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}
	if err := os.MkdirAll(cfg.BasePath, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	var (
		signer cryptoutil.Signer
		err    error
	)
	if cfg.SigningKey != "" {
		signer, err = cryptoutil.NewHMACSigner([]byte(cfg.SigningKey))
	} else {
		signer, err = cryptoutil.NewRandomHMACSigner()
	}
	if err != nil {
		return nil, err
	}

	return &LocalStore{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		signer:   signer,
		now:      time.Now,
	}, nil
}

// WithClock replaces the time source. Intended for tests.
func (s *LocalStore) WithClock(now func() time.Time) *LocalStore {
	s.now = now
	return s
}

func (s *LocalStore) path(id string) string {
	return filepath.Join(s.basePath, id)
}

// Put writes content to a temporary file and renames it into place so
// readers never observe a partial object.
func (s *LocalStore) Put(_ context.Context, content io.Reader, size int64, contentType string) (string, error) {
	if err := checkContentType(contentType); err != nil {
		return "", err
	}

	key := NewKey()
	tmp, err := os.CreateTemp(s.basePath, ".upload-*")
	if err != nil {
		return "", unavailable("create temp file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", unavailable("write file", err)
	}
	if size >= 0 && n != size {
		return "", fmt.Errorf("short write: got %d bytes, want %d", n, size)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return "", unavailable("rename file", err)
	}
	return key, nil
}

// Open opens a stored object for reading.
func (s *LocalStore) Open(_ context.Context, id string) (io.ReadCloser, error) {
	if !ValidKey(id) {
		return nil, ErrObjectNotFound
	}

	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, unavailable("open file", err)
	}
	return f, nil
}

// Delete removes an object. Deleting a missing object succeeds.
func (s *LocalStore) Delete(_ context.Context, id string) error {
	if !ValidKey(id) {
		return nil
	}
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return unavailable("delete file", err)
	}
	return nil
}

// Exists reports whether an object is present.
func (s *LocalStore) Exists(_ context.Context, id string) (bool, error) {
	if !ValidKey(id) {
		return false, nil
	}

	_, err := os.Stat(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, unavailable("stat file", err)
	}
	return true, nil
}

// Presign returns <base_url>/files/<id>?expires=<unix>&signature=<sig>.
func (s *LocalStore) Presign(_ context.Context, id string, ttl time.Duration) (string, error) {
	ttl, err := NormalizeTTL(ttl)
	if err != nil {
		return "", err
	}

	expires := strconv.FormatInt(s.now().Add(ttl).Unix(), 10)
	q := url.Values{}
	q.Set("expires", expires)
	q.Set("signature", s.signer.Sign(linkMessage(id, expires)))

	return s.baseURL + FilesPath + url.PathEscape(id) + "?" + q.Encode(), nil
}

// VerifyLink checks the query parameters of a link produced by Presign.
func (s *LocalStore) VerifyLink(id, expires, signature string) error {
	if !ValidKey(id) || expires == "" || signature == "" {
		return ErrLinkInvalid
	}
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrLinkInvalid
	}
	if err := s.signer.Verify(linkMessage(id, expires), signature); err != nil {
		return fmt.Errorf("%w: %w", ErrLinkInvalid, err)
	}
	if s.now().Unix() > exp {
		return ErrLinkExpired
	}
	return nil
}

func linkMessage(id, expires string) []byte {
	return []byte(id + "\n" + expires)
}

// List returns the keys of every stored object.
func (s *LocalStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, unavailable("read dir", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !ValidKey(e.Name()) {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

// Health checks that the base directory is still present.
func (s *LocalStore) Health(_ context.Context) error {
	info, err := os.Stat(s.basePath)
	if err != nil {
		return unavailable("stat base path", err)
	}
	if !info.IsDir() {
		return unavailable("stat base path", fmt.Errorf("%s is not a directory", s.basePath))
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strconv"
	"strings"
	"time"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
)

// ResumeServiceOptions groups dependencies for ResumeService.
type ResumeServiceOptions struct {
	Store  core.BlobStore       // Required: resume object storage
	Cache  core.CacheRepository // Optional: caches issued download links
	Logger *slog.Logger         // Optional: structured logger
}

// ResumeService stores resume documents and issues time-bounded download links.
//
// Uploaded resumes are not linked to any user; callers attach the returned id
// through the user endpoints. Links are cached for half their lifetime when a
// cache is configured, so a cached link always has at least half its validity left.
type ResumeService struct {
	store  core.BlobStore
	cache  core.CacheRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewResumeService constructs a new ResumeService.
func NewResumeService(opts ResumeServiceOptions) (*ResumeService, error) {
	if opts.Store == nil {
		return nil, errors.New("BlobStore is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "resume_service")
	logger.Info("ResumeService initialized", "has_cache", opts.Cache != nil)

	return &ResumeService{
		store:  opts.Store,
		cache:  opts.Cache,
		logger: logger,
		now:    time.Now,
	}, nil
}

// MustNewResumeService constructs a new ResumeService and panics on error.
func MustNewResumeService(opts ResumeServiceOptions) *ResumeService {
	svc, err := NewResumeService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Upload stores a PDF under a freshly generated id and returns the id.
func (s *ResumeService) Upload(ctx context.Context, content io.Reader, size int64, contentType string) (string, error) {
	if !isPDF(contentType) {
		return "", apperrors.UnsupportedMediaType(contentType)
	}
	if content == nil {
		return "", apperrors.ValidationField("resume", "resume is required")
	}

	id, err := s.store.Put(ctx, content, size, model.ResumeContentType)
	if err != nil {
		s.logger.ErrorContext(ctx, "resume upload failed", "size", size, "error", err)
		return "", fmt.Errorf("upload resume: %w", apperrors.StorageUnavailable(err))
	}

	s.logger.InfoContext(ctx, "resume uploaded", "resume_id", id, "size", size)
	return id, nil
}

// DownloadLink returns a URL granting read access to the resume until ttl
// elapses. A zero ttl means DefaultResumeLinkTTL; longer values are capped
// at MaxResumeLinkTTL.
func (s *ResumeService) DownloadLink(ctx context.Context, id string, ttl time.Duration) (*model.ResumeLink, error) {
	if ttl < 0 {
		return nil, apperrors.ValidationField("expiration", "expiration must be a positive number of seconds")
	}
	ttl = model.ClampResumeLinkTTL(ttl)

	id = strings.TrimSpace(id)
	if !model.ValidResumeID(id) {
		return nil, apperrors.NotFound("resume not found")
	}

	if link := s.cachedLink(ctx, id, ttl); link != nil {
		return link, nil
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "resume existence check failed", "resume_id", id, "error", err)
		return nil, fmt.Errorf("download link: %w", apperrors.StorageUnavailable(err))
	}
	if !exists {
		return nil, apperrors.NotFoundf("resume %s not found", id)
	}

	issuedAt := s.now()
	url, err := s.store.Presign(ctx, id, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "presign failed", "resume_id", id, "error", err)
		return nil, fmt.Errorf("download link: %w", apperrors.StorageUnavailable(err))
	}

	link := &model.ResumeLink{ResumeID: id, URL: url, ExpiresAt: issuedAt.Add(ttl).UTC()}
	s.storeLink(ctx, link, ttl)
	return link, nil
}

// Discard deletes a resume object and any cached links to it. Deleting an
// object that is already gone succeeds, and ids that upload could not have
// issued are ignored.
func (s *ResumeService) Discard(ctx context.Context, id string) error {
	if !model.ValidResumeID(id) {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("discard resume: %w", apperrors.StorageUnavailable(err))
	}
	s.invalidateLinks(ctx, id)
	return nil
}

// Orphans returns stored resume ids that are not in referenced.
func (s *ResumeService) Orphans(ctx context.Context, referenced []string) ([]string, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", apperrors.StorageUnavailable(err))
	}

	refs := make(map[string]struct{}, len(referenced))
	for _, id := range referenced {
		refs[id] = struct{}{}
	}

	var orphans []string
	for _, id := range stored {
		if _, ok := refs[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}

// Health checks the backing object store.
func (s *ResumeService) Health(ctx context.Context) error {
	return s.store.Health(ctx)
}

func linkCacheKey(id string, ttl time.Duration) string {
	return core.ResumeLinkKeyPrefix(id) + strconv.FormatInt(int64(ttl/time.Second), 10)
}

type cachedLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *ResumeService) cachedLink(ctx context.Context, id string, ttl time.Duration) *model.ResumeLink {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, linkCacheKey(id, ttl))
	if err != nil {
		s.logger.WarnContext(ctx, "link cache read failed", "resume_id", id, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var c cachedLink
	if err := json.Unmarshal(raw, &c); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed cached link", "resume_id", id, "error", err)
		return nil
	}
	return &model.ResumeLink{ResumeID: id, URL: c.URL, ExpiresAt: c.ExpiresAt}
}

func (s *ResumeService) storeLink(ctx context.Context, link *model.ResumeLink, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cachedLink{URL: link.URL, ExpiresAt: link.ExpiresAt})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, linkCacheKey(link.ResumeID, ttl), raw, ttl/2); err != nil {
		s.logger.WarnContext(ctx, "link cache write failed", "resume_id", link.ResumeID, "error", err)
	}
}

func (s *ResumeService) invalidateLinks(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.DeletePrefix(ctx, core.ResumeLinkKeyPrefix(id)); err != nil {
		s.logger.WarnContext(ctx, "link cache invalidation failed", "resume_id", id, "error", err)
	}
}

func isPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == model.ResumeContentType
}

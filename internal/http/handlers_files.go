package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/target/recruit-board/internal/blob"
	"github.com/target/recruit-board/internal/domain/model"
)

// SignedFileStore is a blob store that issues self-signed links, such as
// blob.LocalStore.
type SignedFileStore interface {
	VerifyLink(id, expires, signature string) error
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}

// FileHandlers serves blobs behind links signed by the local backend.
type FileHandlers struct {
	Store  SignedFileStore
	Logger *slog.Logger
}

// Get handles GET /files/{key}?expires=&signature=.
func (h *FileHandlers) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	q := r.URL.Query()

	if err := h.Store.VerifyLink(key, q.Get("expires"), q.Get("signature")); err != nil {
		msg := "download link is invalid"
		if errors.Is(err, blob.ErrLinkExpired) {
			msg = "download link has expired"
		}
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: errors.New(msg)})
		return
	}

	rc, err := h.Store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, blob.ErrObjectNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("resume not found")})
			return
		}
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "open signed file failed",
			"request_id", GetRequestID(r.Context()), "key", key, "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New(internalErrorMessage)})
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", model.ResumeContentType)
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		// Client went away mid-stream; headers are already sent.
		return
	}
}

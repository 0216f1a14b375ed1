package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/target/recruit-board/internal/errors"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound},
		{"assignee not found", apperrors.AssigneeNotFound("u1"), http.StatusNotFound},
		{"duplicate email", apperrors.DuplicateEmail("a@b.c"), http.StatusBadRequest},
		{"validation", apperrors.Validation("bad"), http.StatusBadRequest},
		{"conflict", apperrors.Conflict("busy"), http.StatusConflict},
		{"media type", apperrors.UnsupportedMediaType("image/png"), http.StatusUnsupportedMediaType},
		{"storage", apperrors.StorageUnavailable(errors.New("down")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("op: %w", apperrors.NotFound("x")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestWriteAppError(t *testing.T) {
	t.Run("client error carries message and field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		err := fmt.Errorf("list tasks: %w", apperrors.ValidationField("status", "status is invalid"))

		WriteAppError(rec, req, slog.Default(), err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"validation","message":"status is invalid","field":"status"}`, rec.Body.String())
	})

	t.Run("server error hides detail and logs request id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", nil)
		req = req.WithContext(SetRequestIDInContext(context.Background(), "rid-9"))

		WriteAppError(rec, req, logger, apperrors.StorageUnavailable(errors.New("dial tcp 10.0.0.1:9000")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"storage_unavailable","message":"internal server error"}`, rec.Body.String())
		assert.Contains(t, buf.String(), "rid-9")
		assert.Contains(t, buf.String(), "dial tcp")
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteAppError(rec, httptest.NewRequest(http.MethodGet, "/", nil), slog.New(slog.DiscardHandler), errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal","message":"internal server error"}`, rec.Body.String())
	})
}

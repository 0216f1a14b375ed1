package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/target/recruit-board/internal/service"
)

// DefaultMaxUploadBytes bounds resume uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

const (
	resumeFormField = "resume"
	// multipartMemory is the part of a form kept in memory; the rest spills to temp files.
	multipartMemory = 1 << 20
)

// ResumeHandlers provides HTTP handlers for resume upload and download links.
type ResumeHandlers struct {
	Svc            *service.ResumeService
	MaxUploadBytes int64
	Logger         *slog.Logger
}

type resumeUploadResponse struct {
	ResumeID string `json:"resume_id"`
}

// Upload handles POST /api/v1/resumes with a multipart "resume" field.
func (h *ResumeHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, ErrorParams{
				Code:    http.StatusRequestEntityTooLarge,
				ErrCode: "payload_too_large",
				Err:     errors.New("resume exceeds the upload size limit"),
			})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err, Field: resumeFormField})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(resumeFormField)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_form",
			Err:     errors.New("multipart field \"resume\" is required"),
			Field:   resumeFormField,
		})
		return
	}
	defer func() { _ = file.Close() }()

	id, err := h.Svc.Upload(r.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, resumeUploadResponse{ResumeID: id})
}

// DownloadLink handles GET /api/v1/resumes/{id}?expiration=<seconds>.
func (h *ResumeHandlers) DownloadLink(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseExpiration(r)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}

	link, err := h.Svc.DownloadLink(r.Context(), r.PathValue("id"), ttl)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, link)
}

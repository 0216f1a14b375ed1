package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/recruit-board/internal/blob"
	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
	"github.com/target/recruit-board/internal/mocks"
	"github.com/target/recruit-board/internal/service"
	"github.com/target/recruit-board/internal/testutil"
)

const (
	userID   = "6f1c0e0e-7b1a-4f0e-9d1e-2f1a3b4c5d6e"
	taskID   = "2d9a9fac-3d4e-4f50-a162-7c8d9e0f1a2b"
	resumeID = "0b7e7d8a-1b2c-4d3e-8f40-5a6b7c8d9e0f.pdf"
)

type routerFixture struct {
	users   *mocks.MockUserRepository
	tasks   *mocks.MockTaskRepository
	blobs   *mocks.MockBlobStore
	handler http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &routerFixture{
		users: mocks.NewMockUserRepository(ctrl),
		tasks: mocks.NewMockTaskRepository(ctrl),
		blobs: mocks.NewMockBlobStore(ctrl),
	}
	f.handler = newTestRouter(f.users, f.tasks, f.blobs, nil, 0)
	return f
}

func newTestRouter(
	users core.UserRepository,
	tasks core.TaskRepository,
	store core.BlobStore,
	files SignedFileStore,
	maxUpload int64,
) http.Handler {
	logger := slog.New(slog.DiscardHandler)
	resumes := service.MustNewResumeService(service.ResumeServiceOptions{Store: store, Logger: logger})
	return NewRouter(RouterServices{
		Users: service.MustNewUserService(service.UserServiceOptions{
			Repo: users, Tasks: tasks, Resumes: resumes, Logger: logger,
		}),
		Tasks:          service.MustNewTaskService(service.TaskServiceOptions{Repo: tasks, Users: users, Logger: logger}),
		Resumes:        resumes,
		Files:          files,
		MaxUploadBytes: maxUpload,
		Logger:         logger,
	})
}

func (f *routerFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestUserRoutes(t *testing.T) {
	ada := &model.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: model.RoleBackend}

	t.Run("create", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *model.UserInput) (*model.User, error) {
				assert.Equal(t, "ada@example.com", in.Email)
				return ada, nil
			})

		rec := f.do(http.MethodPost, "/api/v1/users",
			`{"user":{"name":"Ada","email":" ADA@example.com ","role":"backend"}}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		body := decodeBody[userResponse](t, rec)
		assert.Equal(t, userID, body.User.ID)
	})

	t.Run("create rejects invalid role without touching the database", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(http.MethodPost, "/api/v1/users", `{"user":{"name":"Ada","email":"ada@example.com","role":"pilot"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"validation"`)
	})

	t.Run("create duplicate email", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.DuplicateEmail("ada@example.com"))

		rec := f.do(http.MethodPost, "/api/v1/users", `{"user":{"name":"Ada","email":"ada@example.com","role":"backend"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"duplicate_email"`)
	})

	t.Run("create rejects a resume id upload never issued", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(http.MethodPost, "/api/v1/users",
			`{"user":{"name":"Ada","email":"ada@example.com","role":"backend","resume_id":"*"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"resume_id"`)
	})

	t.Run("create with a resume held by another user", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ResumeInUse())

		rec := f.do(http.MethodPost, "/api/v1/users",
			`{"user":{"name":"Ada","email":"ada@example.com","role":"backend","resume_id":"`+resumeID+`"}}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"conflict"`)
	})

	t.Run("malformed json", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(http.MethodPost, "/api/v1/users", `{"user":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list empty is an empty array", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().List(gomock.Any()).Return(nil, nil)

		rec := f.do(http.MethodGet, "/api/v1/users", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"users":[]}`, rec.Body.String())
	})

	t.Run("get missing", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), "not-a-uuid").Return(nil, apperrors.NotFound("user not found"))

		rec := f.do(http.MethodGet, "/api/v1/users/not-a-uuid", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Update(gomock.Any(), userID, gomock.Any()).
			Return(&core.UserChange{Previous: ada, Current: ada}, nil)

		rec := f.do(http.MethodPut, "/api/v1/users/"+userID,
			`{"user":{"name":"Ada","email":"ada@example.com","role":"backend"}}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete with tasks conflicts", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), userID).Return(ada, nil)
		f.tasks.EXPECT().CountByAssignee(gomock.Any(), userID).Return(2, nil)

		rec := f.do(http.MethodDelete, "/api/v1/users/"+userID, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), userID).Return(ada, nil)
		f.tasks.EXPECT().CountByAssignee(gomock.Any(), userID).Return(0, nil)
		f.users.EXPECT().Delete(gomock.Any(), userID).Return(true, nil)

		rec := f.do(http.MethodDelete, "/api/v1/users/"+userID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}

func TestTaskRoutes(t *testing.T) {
	task := &model.Task{
		ID:         taskID,
		Title:      "Review resume",
		AssigneeID: userID,
		Status:     model.TaskStatusTodo,
		Priority:   model.TaskPriorityMedium,
	}

	t.Run("create with missing assignee", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Exists(gomock.Any(), userID).Return(false, nil)

		rec := f.do(http.MethodPost, "/api/v1/tasks", `{"task":{"title":"Review resume","assignee_id":"`+userID+`"}}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"assignee_not_found"`)
	})

	t.Run("create applies defaults", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Exists(gomock.Any(), userID).Return(true, nil)
		f.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *model.TaskInput) (*model.Task, error) {
				assert.Equal(t, model.TaskStatusTodo, in.Status)
				assert.Equal(t, model.TaskPriorityMedium, in.Priority)
				return task, nil
			})

		rec := f.do(http.MethodPost, "/api/v1/tasks", `{"task":{"title":"Review resume","assignee_id":"`+userID+`"}}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, taskID, decodeBody[taskResponse](t, rec).Task.ID)
	})

	t.Run("list passes filters", func(t *testing.T) {
		f := newRouterFixture(t)
		f.tasks.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter model.TaskFilter) ([]*model.Task, error) {
				require.NotNil(t, filter.Status)
				assert.Equal(t, model.TaskStatusTodo, *filter.Status)
				assert.Nil(t, filter.Priority)
				return []*model.Task{task}, nil
			})

		rec := f.do(http.MethodGet, "/api/v1/tasks?status=todo", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[tasksResponse](t, rec).Tasks, 1)
	})

	t.Run("list rejects bad filter", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(http.MethodGet, "/api/v1/tasks?priority=urgent", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status counts are zero filled", func(t *testing.T) {
		f := newRouterFixture(t)
		f.tasks.EXPECT().StatusCounts(gomock.Any(), gomock.Nil()).
			Return(map[model.TaskStatus]int{model.TaskStatusDone: 3}, nil)

		rec := f.do(http.MethodGet, "/api/v1/tasks/status-counts", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"counts":[
			{"status":"todo","count":0},
			{"status":"in_progress","count":0},
			{"status":"review","count":0},
			{"status":"done","count":3}]}`, rec.Body.String())
	})

	t.Run("patch status", func(t *testing.T) {
		f := newRouterFixture(t)
		done := *task
		done.Status = model.TaskStatusDone
		f.tasks.EXPECT().UpdateStatus(gomock.Any(), taskID, model.TaskStatusDone).Return(&done, nil)

		rec := f.do(http.MethodPatch, "/api/v1/tasks/"+taskID+"/status", `{"status":"done"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, model.TaskStatusDone, decodeBody[taskResponse](t, rec).Task.Status)
	})

	t.Run("patch priority rejects unknown value", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(http.MethodPatch, "/api/v1/tasks/"+taskID+"/priority", `{"priority":"urgent"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("patch assignee to missing user", func(t *testing.T) {
		f := newRouterFixture(t)
		f.users.EXPECT().Exists(gomock.Any(), userID).Return(false, nil)

		rec := f.do(http.MethodPatch, "/api/v1/tasks/"+taskID+"/assignee", `{"assignee_id":"`+userID+`"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		f := newRouterFixture(t)
		f.tasks.EXPECT().Delete(gomock.Any(), taskID).Return(false, nil)

		rec := f.do(http.MethodDelete, "/api/v1/tasks/"+taskID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func multipartBody(t *testing.T, field, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="resume.pdf"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestResumeUploadRejections(t *testing.T) {
	pdf := testutil.MinimalPDF()

	t.Run("wrong media type", func(t *testing.T) {
		f := newRouterFixture(t)
		body, ct := multipartBody(t, "resume", "image/png", pdf)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		f := newRouterFixture(t)
		body, ct := multipartBody(t, "file", "application/pdf", pdf)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := newTestRouter(mocks.NewMockUserRepository(ctrl), mocks.NewMockTaskRepository(ctrl),
			mocks.NewMockBlobStore(ctrl), nil, 64)
		body, ct := multipartBody(t, "resume", "application/pdf", bytes.Repeat([]byte("x"), 4096))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("storage down hides detail", func(t *testing.T) {
		f := newRouterFixture(t)
		f.blobs.EXPECT().Put(gomock.Any(), gomock.Any(), int64(len(pdf)), "application/pdf").
			Return("", blob.ErrUnavailable)
		body, ct := multipartBody(t, "resume", "application/pdf", pdf)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "blob:")
	})
}

func TestDownloadLinkMissingResume(t *testing.T) {
	f := newRouterFixture(t)
	f.blobs.EXPECT().Exists(gomock.Any(), resumeID).Return(false, nil)

	rec := f.do(http.MethodGet, "/api/v1/resumes/"+resumeID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadLinkForeignID(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/api/v1/resumes/missing.pdf", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadLinkBadExpiration(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/api/v1/resumes/x.pdf?expiration=soon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Upload a PDF, request a link, fetch it through /files and get the same bytes back.
func TestResumeRoundTripLocalStore(t *testing.T) {
	store, err := blob.NewLocalStore(blob.Config{
		BasePath:   t.TempDir(),
		BaseURL:    "http://board.test",
		SigningKey: "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	h := newTestRouter(mocks.NewMockUserRepository(ctrl), mocks.NewMockTaskRepository(ctrl), store, store, 0)
	pdf := testutil.MinimalPDF()

	body, ct := multipartBody(t, "resume", "application/pdf", pdf)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody[resumeUploadResponse](t, rec).ResumeID
	require.True(t, blob.ValidKey(id))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+id+"?expiration=600", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var link struct {
		DownloadLink string `json:"download_link"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	u, err := url.Parse(link.DownloadLink)
	require.NoError(t, err)
	assert.Equal(t, "board.test", u.Host)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, pdf, rec.Body.Bytes())

	t.Run("tampered signature is forbidden", func(t *testing.T) {
		q := u.Query()
		q.Set("expires", "9999999999")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.Path+"?"+q.Encode(), nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestFilesRouteAbsentWithoutLocalStore(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/files/abc.pdf", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

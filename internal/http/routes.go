package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/recruit-board/internal/service"
)

// APIPrefix is the path prefix of every JSON API route.
const APIPrefix = "/api/v1"

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Users   *service.UserService
	Tasks   *service.TaskService
	Resumes *service.ResumeService
	// Optional: set only when the local blob backend issues the download links.
	Files SignedFileStore
	// Optional: named dependency probes reported by /health.
	HealthChecks   map[string]HealthCheck
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// NewRouter creates the HTTP handler with request id, recovery and access
// logging applied to every route.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	registerUserRoutes(mux, &UserHandlers{Svc: services.Users, Logger: logger})
	registerTaskRoutes(mux, &TaskHandlers{Svc: services.Tasks, Logger: logger})
	registerResumeRoutes(mux, &ResumeHandlers{
		Svc:            services.Resumes,
		MaxUploadBytes: services.MaxUploadBytes,
		Logger:         logger,
	})
	if services.Files != nil {
		mux.HandleFunc("GET /files/{key}", (&FileHandlers{Store: services.Files, Logger: logger}).Get)
	}

	health := &HealthHandler{Checks: services.HealthChecks}
	mux.Handle("GET /health", health)
	mux.Handle("HEAD /health", health)

	return Chain(mux, RequestID(), Recover(logger), Logging(logger))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers) {
	registerCRUD(mux, crudRoutes{
		Base:    APIPrefix + "/users",
		Create:  h.Create,
		List:    h.List,
		GetByID: h.GetByID,
		Update:  h.Update,
		Delete:  h.Delete,
	})
}

func registerTaskRoutes(mux *http.ServeMux, h *TaskHandlers) {
	base := APIPrefix + "/tasks"
	registerCRUD(mux, crudRoutes{
		Base:    base,
		Create:  h.Create,
		List:    h.List,
		GetByID: h.GetByID,
		Update:  h.Update,
		Delete:  h.Delete,
	})

	mux.HandleFunc("GET "+base+"/status-counts", h.StatusCounts)
	mux.HandleFunc("PATCH "+base+"/{id}/status", h.UpdateStatus)
	mux.HandleFunc("PATCH "+base+"/{id}/assignee", h.UpdateAssignee)
	mux.HandleFunc("PATCH "+base+"/{id}/priority", h.UpdatePriority)
}

func registerResumeRoutes(mux *http.ServeMux, h *ResumeHandlers) {
	mux.HandleFunc("POST "+APIPrefix+"/resumes", h.Upload)
	mux.HandleFunc("GET "+APIPrefix+"/resumes/{id}", h.DownloadLink)
}

// crudRoutes lists the handlers for one resource base path.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

// registerCRUD registers standard CRUD routes for a resource base path, applying mw if non-nil.
func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}

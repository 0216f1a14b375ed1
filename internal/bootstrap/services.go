package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/recruit-board/config"
	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/data"
	httpx "github.com/target/recruit-board/internal/http"
	"github.com/target/recruit-board/internal/service"
)

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	Users   *service.UserService
	Tasks   *service.TaskService
	Resumes *service.ResumeService

	// UserRepo is exposed for maintenance commands.
	UserRepo core.UserRepository
	// Files is set when the blob store serves its own signed links.
	Files httpx.SignedFileStore
	// Cache is nil when the link cache is disabled.
	Cache core.CacheRepository
}

// ServiceDeps contains dependencies for creating services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Blobs       core.BlobStore
	Logger      *slog.Logger
}

// NewServices wires repositories, the blob store and the optional link
// cache into the domain services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := data.NewUserRepo(deps.DB)
	tasks := data.NewTaskRepo(deps.DB)

	var cache core.CacheRepository
	if deps.RedisClient != nil && (deps.Config == nil || deps.Config.ResumeLinkCacheEnabled) {
		cache = data.NewRedisCacheRepo(deps.RedisClient)
	}

	resumes := service.MustNewResumeService(service.ResumeServiceOptions{
		Store:  deps.Blobs,
		Cache:  cache,
		Logger: logger,
	})

	container := ServiceContainer{
		Users: service.MustNewUserService(service.UserServiceOptions{
			Repo:    users,
			Tasks:   tasks,
			Resumes: resumes,
			Logger:  logger,
		}),
		Tasks: service.MustNewTaskService(service.TaskServiceOptions{
			Repo:   tasks,
			Users:  users,
			Logger: logger,
		}),
		Resumes:  resumes,
		UserRepo: users,
		Cache:    cache,
	}
	if files, ok := deps.Blobs.(httpx.SignedFileStore); ok {
		container.Files = files
	}
	return container
}

// Package mocks provides mock implementations of the core ports for service tests.
//
// This package uses go.uber.org/mock (gomock). To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserRepository(ctrl)
//	users.EXPECT().GetByID(gomock.Any(), id).Return(user, nil)
package mocks

// UserRepository: Create, GetByID, Exists, List, Update, Delete, ListResumeIDs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/target/recruit-board/internal/core UserRepository

// TaskRepository: Create, GetByID, List, Update, UpdateStatus, UpdateAssignee, UpdatePriority, Delete, StatusCounts, CountByAssignee
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=task_repository_mock.go github.com/target/recruit-board/internal/core TaskRepository

// BlobStore: Put, Open, Delete, Exists, Presign, List, Health
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=blob_store_mock.go github.com/target/recruit-board/internal/core BlobStore

// CacheRepository: Set, Get, Delete, DeletePrefix, Health
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/target/recruit-board/internal/core CacheRepository

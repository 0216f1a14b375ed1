package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
)

// ResumeDiscarder removes a stored resume. ResumeService implements it.
type ResumeDiscarder interface {
	Discard(ctx context.Context, id string) error
}

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo    core.UserRepository // Required: user repository
	Tasks   core.TaskRepository // Required: checked before a user is deleted
	Resumes ResumeDiscarder     // Optional: deletes replaced and orphaned resumes
	Logger  *slog.Logger        // Optional: structured logger
}

// UserService provides business logic for user operations.
//
// ORCHESTRATION:
//   - The relational write always commits before any resume object is touched.
//   - A resume that stops being referenced (replaced, cleared or its owner
//     deleted) is deleted afterwards. Failure to delete it is logged with
//     orphaned_resume_id and never fails the request.
type UserService struct {
	repo    core.UserRepository
	tasks   core.TaskRepository
	resumes ResumeDiscarder
	logger  *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) (*UserService, error) {
	if opts.Repo == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Tasks == nil {
		return nil, errors.New("TaskRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		repo:    opts.Repo,
		tasks:   opts.Tasks,
		resumes: opts.Resumes,
		logger:  logger.With("component", "user_service"),
	}, nil
}

// MustNewUserService constructs a new UserService and panics on error.
func MustNewUserService(opts UserServiceOptions) *UserService {
	svc, err := NewUserService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create validates and inserts a user. The resume id, if any, is stored as
// given without checking that the object exists.
func (s *UserService) Create(ctx context.Context, in *model.UserInput) (*model.User, error) {
	if in == nil {
		return nil, apperrors.Validation("user is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.InfoContext(ctx, "user created", "user_id", u.ID)
	return u, nil
}

// GetByID returns a user.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update replaces every writable field of a user. When the resume reference
// changes, the previously referenced object is deleted after the update commits.
func (s *UserService) Update(ctx context.Context, id string, in *model.UserInput) (*model.User, error) {
	if in == nil {
		return nil, apperrors.Validation("user is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	change, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	prev := change.Previous
	if prev != nil && prev.HasResume() && !model.SameResume(prev.ResumeID, change.Current.ResumeID) {
		s.discardResume(ctx, id, *prev.ResumeID)
	}

	s.logger.InfoContext(ctx, "user updated", "user_id", id)
	return change.Current, nil
}

// Delete removes a user and its resume. Users that still have assigned
// tasks cannot be deleted; that check runs before the resume is touched.
func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	n, err := s.tasks.CountByAssignee(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n > 0 {
		return apperrors.Conflictf("user %s still has %d assigned task(s)", id, n)
	}

	if u.HasResume() {
		s.discardResume(ctx, id, *u.ResumeID)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperrors.NotFoundf("user %s not found", id)
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *UserService) discardResume(ctx context.Context, userID, resumeID string) {
	if s.resumes == nil {
		s.logger.WarnContext(ctx, "no resume store configured, leaving resume in place",
			"user_id", userID,
			"orphaned_resume_id", resumeID)
		return
	}
	if err := s.resumes.Discard(ctx, resumeID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete resume, object orphaned",
			"user_id", userID,
			"orphaned_resume_id", resumeID,
			"error", err)
	}
}

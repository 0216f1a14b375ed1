package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
	"github.com/target/recruit-board/internal/testutil"
)

const (
	resumeOne = "0b7e7d8a-1b2c-4d3e-8f40-5a6b7c8d9e0f.pdf"
	resumeTwo = "1c8f8e9b-2c3d-4e4f-9051-6b7c8d9e0f1a.pdf"
)

func createTestUser(t *testing.T, db *sql.DB, in *model.UserInput) *model.User {
	t.Helper()
	u, err := NewUserRepo(db).Create(context.Background(), in)
	require.NoError(t, err)
	return u
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestUserRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := NewFixedTimeProvider(testutil.TestTime())
		repo := NewUserRepoWithTimeProvider(db, clock)

		// create
		in := testutil.NewUserInput().WithNotes("referral").WithResume(resumeOne).Build()
		u, err := repo.Create(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		assert.Equal(t, in.Email, u.Email)
		assert.Equal(t, model.RoleBackend, u.Role)
		require.NotNil(t, u.ResumeID)
		assert.Equal(t, resumeOne, *u.ResumeID)
		assert.True(t, u.CreatedAt.Equal(testutil.TestTime()))

		// get
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Name, got.Name)

		exists, err := repo.Exists(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		// list
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		// update returns before and after in one transaction
		clock.AddTime(time.Minute)
		upd := testutil.NewUserInput().WithName("Renamed").WithResume(resumeTwo).WithRole(model.RoleQA).Build()
		change, err := repo.Update(ctx, u.ID, upd)
		require.NoError(t, err)
		assert.Equal(t, resumeOne, *change.Previous.ResumeID)
		assert.Equal(t, resumeTwo, *change.Current.ResumeID)
		assert.Equal(t, "Renamed", change.Current.Name)
		assert.Equal(t, model.RoleQA, change.Current.Role)
		assert.True(t, change.Current.UpdatedAt.After(change.Current.CreatedAt))

		ids, err := repo.ListResumeIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{resumeTwo}, ids)

		// delete twice
		deleted, err := repo.Delete(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.GetByID(ctx, u.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		first := createTestUser(t, db, testutil.NewUserInput().WithEmail("dup@example.com").Build())
		before := countUsers(t, db)

		_, err := repo.Create(ctx, testutil.NewUserInput().WithEmail("dup@example.com").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsDuplicateEmail(err), "got %v", err)
		assert.Equal(t, before, countUsers(t, db))

		// updating another user onto the taken email is rejected too
		other := createTestUser(t, db, testutil.NewUserInput().Build())
		_, err = repo.Update(ctx, other.ID, testutil.NewUserInput().WithEmail(first.Email).Build())
		assert.True(t, apperrors.IsDuplicateEmail(err), "got %v", err)

		got, err := repo.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, other.Email, got.Email)
	})
}

func TestUserRepo_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)
		missing := "00000000-0000-4000-8000-000000000000"

		_, err := repo.GetByID(ctx, missing)
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.Update(ctx, missing, testutil.NewUserInput().Build())
		assert.True(t, apperrors.IsNotFound(err))

		exists, err := repo.Exists(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestUserRepo_DeleteWithTasksConflicts(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		u := createTestUser(t, db, testutil.NewUserInput().Build())
		_, err := NewTaskRepo(db).Create(ctx, testutil.NewTaskInput(u.ID).Build())
		require.NoError(t, err)

		_, err = NewUserRepo(db).Delete(ctx, u.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
	})
}

func TestUserRepo_ResumeHeldByOneUser(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		owner := createTestUser(t, db, testutil.NewUserInput().WithEmail("owner@example.com").WithResume(resumeOne).Build())

		_, err := repo.Create(ctx, testutil.NewUserInput().WithEmail("other@example.com").WithResume(resumeOne).Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
		assert.Equal(t, "resume_id", apperrors.GetField(err))

		other := createTestUser(t, db, testutil.NewUserInput().WithEmail("other@example.com").WithResume(resumeTwo).Build())
		_, err = repo.Update(ctx, other.ID, testutil.NewUserInput().WithEmail("other@example.com").WithResume(resumeOne).Build())
		assert.True(t, apperrors.IsConflict(err), "got %v", err)

		got, err := repo.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, resumeTwo, *got.ResumeID)

		// users without a resume do not collide
		createTestUser(t, db, testutil.NewUserInput().WithEmail("a@example.com").Build())
		createTestUser(t, db, testutil.NewUserInput().WithEmail("b@example.com").Build())

		ids, err := repo.ListResumeIDs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{resumeOne, resumeTwo}, ids)
		assert.NotEmpty(t, owner.ID)
	})
}

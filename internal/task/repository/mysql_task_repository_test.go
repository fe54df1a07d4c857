package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/taskman/internal/errors"
	"github.com/allisson/taskman/internal/task/domain"
	"github.com/allisson/taskman/internal/testutil"
)

func TestMySQLTaskRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	ownerID := testutil.CreateTestUser(t, db, "mysql", "owner@example.com")
	task := newTestTask(ownerID, "buy milk")

	err := repo.Create(ctx, task)
	assert.NoError(t, err)

	created, err := repo.GetByID(ctx, ownerID, task.ID)
	assert.NoError(t, err)
	assert.Equal(t, task.ID, created.ID)
	assert.Equal(t, ownerID, created.OwnerID)
	assert.Equal(t, "buy milk", created.Title)
}

func TestMySQLTaskRepository_Create_DuplicateTitle(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	ownerID := testutil.CreateTestUser(t, db, "mysql", "owner@example.com")
	require.NoError(t, repo.Create(ctx, newTestTask(ownerID, "buy milk")))

	err := repo.Create(ctx, newTestTask(ownerID, "buy milk"))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrTaskAlreadyExists))
}

func TestMySQLTaskRepository_ListAndSearch(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	ownerID := testutil.CreateTestUser(t, db, "mysql", "owner@example.com")
	otherOwner := testutil.CreateTestUser(t, db, "mysql", "other@example.com")

	require.NoError(t, repo.Create(ctx, newTestTask(ownerID, "Buy milk")))
	require.NoError(t, repo.Create(ctx, newTestTask(ownerID, "walk the dog")))
	require.NoError(t, repo.Create(ctx, newTestTask(otherOwner, "buy cheese")))

	tasks, err := repo.List(ctx, ownerID, 0, 50)
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = repo.Search(ctx, ownerID, "buy", 0, 50)
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestMySQLTaskRepository_UpdateAndDelete(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	ownerID := testutil.CreateTestUser(t, db, "mysql", "owner@example.com")
	task := newTestTask(ownerID, "buy milk")
	require.NoError(t, repo.Create(ctx, task))

	task.Status = domain.StatusCompleted
	assert.NoError(t, repo.Update(ctx, task))

	updated, err := repo.GetByID(ctx, ownerID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	assert.NoError(t, repo.Delete(ctx, ownerID, task.ID))

	_, err = repo.GetByID(ctx, ownerID, task.ID)
	assert.True(t, apperrors.Is(err, domain.ErrTaskNotFound))
}

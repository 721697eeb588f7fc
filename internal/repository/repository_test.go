package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
	"taskdeck/internal/repository"
)

var testDB *sql.DB

// TestMain boots a throwaway postgres container. When Docker is not
// available the suite is skipped rather than failed, so the package still
// passes on machines that only run the in-memory tests.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker not available, skipping postgres tests: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_USER=taskdeck",
		"POSTGRES_DB=taskdeck_test",
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	resource.Expire(180)

	dsn := fmt.Sprintf("host=localhost port=%s user=taskdeck password=secret dbname=taskdeck_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	if err := repository.CreateTableIfNotExists(testDB); err != nil {
		log.Fatalf("could not create schema: %v", err)
	}

	code := m.Run()

	testDB.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}
	os.Exit(code)
}

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container not available")
	}
	return repository.NewStore(testDB)
}

func createUser(t *testing.T, store *repository.Store, email string) models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), email, "Test User", "$2a$10$hash")
	require.NoError(t, err)
	return user
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newStore(t)
	createUser(t, store, "unique@example.com")

	_, err := store.CreateUser(context.Background(), "unique@example.com", "Other", "$2a$10$hash")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestUserLookups(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "lookup@example.com")

	byID, err := store.UserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := store.UserByEmail(context.Background(), "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.UserByEmail(context.Background(), "nobody@example.com")
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateCategoryWritesOwnershipEdge(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "catowner@example.com")

	category, err := store.CreateCategoryOwnedBy(context.Background(), user.ID, "Work", models.ColorGreen)
	require.NoError(t, err)
	require.NotZero(t, category.ID)

	owns, err := store.HasUserCategory(context.Background(), user.ID, category.ID)
	require.NoError(t, err)
	assert.True(t, owns)

	listed, err := store.CategoriesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, category.ID, listed[0].ID)
}

func TestCreateTaskWritesBothEdges(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "taskowner@example.com")
	category, err := store.CreateCategoryOwnedBy(context.Background(), user.ID, "Work", models.ColorBlue)
	require.NoError(t, err)

	task, err := store.CreateTaskInCategory(context.Background(), user.ID, category.ID, "Ship it", "soon", models.PriorityHigh)
	require.NoError(t, err)

	owns, err := store.HasUserTask(context.Background(), user.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, owns)

	inCategory, err := store.TasksByCategory(context.Background(), category.ID)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, task.ID, inCategory[0].ID)
}

// The whole creation group must roll back when the category reference is
// broken; no orphan task row may survive.
func TestCreateTaskRollsBackOnBadCategory(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "rollback@example.com")

	_, err := store.CreateTaskInCategory(context.Background(), user.ID, 999999, "Orphan", "", models.PriorityLow)
	require.Error(t, err)

	tasks, err := store.TasksByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteCategoryKeepsTasks(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "cascade@example.com")
	category, err := store.CreateCategoryOwnedBy(context.Background(), user.ID, "Doomed", models.ColorRed)
	require.NoError(t, err)
	task, err := store.CreateTaskInCategory(context.Background(), user.ID, category.ID, "Survivor", "", models.PriorityMedium)
	require.NoError(t, err)

	require.NoError(t, store.DeleteCategory(context.Background(), category.ID))

	// The task survives the category; only the structural link is gone.
	got, err := store.TaskByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Survivor", got.Title)

	owns, err := store.HasUserTask(context.Background(), user.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, owns)
}

func TestDeleteTaskCascadesToSubtasks(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "subcascade@example.com")
	category, err := store.CreateCategoryOwnedBy(context.Background(), user.ID, "Work", models.ColorPurple)
	require.NoError(t, err)
	task, err := store.CreateTaskInCategory(context.Background(), user.ID, category.ID, "Parent", "", models.PriorityMedium)
	require.NoError(t, err)
	subtask, err := store.CreateSubtask(context.Background(), task.ID, "Child")
	require.NoError(t, err)

	require.NoError(t, store.DeleteTask(context.Background(), task.ID))

	_, err = store.SubtaskByID(context.Background(), subtask.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = store.SubtaskParent(context.Background(), subtask.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSubtaskParentResolution(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "parent@example.com")
	category, err := store.CreateCategoryOwnedBy(context.Background(), user.ID, "Work", models.ColorYellow)
	require.NoError(t, err)
	task, err := store.CreateTaskInCategory(context.Background(), user.ID, category.ID, "Parent", "", models.PriorityLow)
	require.NoError(t, err)
	subtask, err := store.CreateSubtask(context.Background(), task.ID, "Child")
	require.NoError(t, err)

	parentID, err := store.SubtaskParent(context.Background(), subtask.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, parentID)

	_, err = store.SubtaskParent(context.Background(), 999999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSetFavoriteAndDoneRoundTrip(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "flags@example.com")
	category, err := store.CreateCategoryOwnedBy(context.Background(), user.ID, "Work", models.ColorOrange)
	require.NoError(t, err)

	favored, err := store.SetCategoryFavorite(context.Background(), category.ID, true)
	require.NoError(t, err)
	assert.True(t, favored.IsFavorite)

	favorites, err := store.FavoriteCategoriesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	task, err := store.CreateTaskInCategory(context.Background(), user.ID, category.ID, "Flag me", "", models.PriorityLow)
	require.NoError(t, err)

	done, err := store.SetTaskDone(context.Background(), task.ID, true)
	require.NoError(t, err)
	assert.True(t, done.IsDone)

	doneList, err := store.DoneTasksByCategory(context.Background(), category.ID)
	require.NoError(t, err)
	require.Len(t, doneList, 1)
	assert.Equal(t, task.ID, doneList[0].ID)
}

func TestDeleteMissingRowsAreNotFound(t *testing.T) {
	store := newStore(t)

	assert.True(t, apperr.IsNotFound(store.DeleteCategory(context.Background(), 999999)))
	assert.True(t, apperr.IsNotFound(store.DeleteTask(context.Background(), 999999)))
	assert.True(t, apperr.IsNotFound(store.DeleteSubtask(context.Background(), 999999)))
}

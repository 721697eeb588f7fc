package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/apperr"
)

func TestCreateSubtaskRequiresParentStanding(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	b := e.registerUser("b@x.com")
	category := e.createCategory(a.ID, "Work")
	task := e.createTask(a.ID, category.ID, "Parent")

	_, err := e.subtasks.Create(context.Background(), b.ID, task.ID, "Sneaky")
	assert.True(t, apperr.IsForbidden(err))

	subtask, err := e.subtasks.Create(context.Background(), a.ID, task.ID, "Step one")
	require.NoError(t, err)
	assert.Equal(t, task.ID, subtask.TaskID)
	assert.False(t, subtask.IsDone)
}

func TestCreateSubtaskUnderMissingTaskIsNotFound(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")

	_, err := e.subtasks.Create(context.Background(), a.ID, 999, "Orphan")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSubtaskAccessFollowsParentTask(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	b := e.registerUser("b@x.com")
	category := e.createCategory(a.ID, "Work")
	task := e.createTask(a.ID, category.ID, "Parent")

	subtask, err := e.subtasks.Create(context.Background(), a.ID, task.ID, "Step one")
	require.NoError(t, err)

	// B has no standing on the parent, so every subtask operation is refused.
	_, err = e.subtasks.MarkDone(context.Background(), b.ID, subtask.ID)
	assert.True(t, apperr.IsForbidden(err))
	_, err = e.subtasks.Update(context.Background(), b.ID, subtask.ID, "Hijack")
	assert.True(t, apperr.IsForbidden(err))
	assert.True(t, apperr.IsForbidden(e.subtasks.Delete(context.Background(), b.ID, subtask.ID)))

	// Granting the parent task flips every decision at once. The subtask
	// itself carries no edge, so nothing else needs to change.
	e.store.GrantTask(b.ID, task.ID)

	done, err := e.subtasks.MarkDone(context.Background(), b.ID, subtask.ID)
	require.NoError(t, err)
	assert.True(t, done.IsDone)

	reopened, err := e.subtasks.MarkUndone(context.Background(), b.ID, subtask.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsDone)
}

func TestListSubtasksByTask(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	b := e.registerUser("b@x.com")
	category := e.createCategory(a.ID, "Work")
	task := e.createTask(a.ID, category.ID, "Parent")

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := e.subtasks.Create(context.Background(), a.ID, task.ID, title)
		require.NoError(t, err)
	}

	listed, err := e.subtasks.ListByTask(context.Background(), a.ID, task.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	_, err = e.subtasks.ListByTask(context.Background(), b.ID, task.ID)
	assert.True(t, apperr.IsForbidden(err))
}

func TestSubtaskMissingBeatsForbidden(t *testing.T) {
	e := newEnv()
	b := e.registerUser("b@x.com")

	// A subtask that does not exist is reported as missing even to a user
	// who would have no standing on it anyway.
	_, err := e.subtasks.Update(context.Background(), b.ID, 999, "Ghost")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSubtaskValidation(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	category := e.createCategory(a.ID, "Work")
	task := e.createTask(a.ID, category.ID, "Parent")

	_, err := e.subtasks.Create(context.Background(), a.ID, task.ID, "")
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = e.subtasks.Update(context.Background(), a.ID, 0, "Ok")
	assert.True(t, apperr.IsInvalidArgument(err))
}

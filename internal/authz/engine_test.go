package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/apperr"
	"taskdeck/internal/authz"
)

type pair struct{ user, target int }

type fakeEdges struct {
	userCategories map[pair]bool
	userTasks      map[pair]bool
	parents        map[int]int
}

func newFakeEdges() *fakeEdges {
	return &fakeEdges{
		userCategories: map[pair]bool{},
		userTasks:      map[pair]bool{},
		parents:        map[int]int{},
	}
}

func (f *fakeEdges) HasUserCategory(_ context.Context, userID, categoryID int) (bool, error) {
	return f.userCategories[pair{userID, categoryID}], nil
}

func (f *fakeEdges) HasUserTask(_ context.Context, userID, taskID int) (bool, error) {
	return f.userTasks[pair{userID, taskID}], nil
}

func (f *fakeEdges) SubtaskParent(_ context.Context, subtaskID int) (int, error) {
	taskID, ok := f.parents[subtaskID]
	if !ok {
		return 0, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", subtaskID)
	}
	return taskID, nil
}

func TestCategoryDecisionMatchesEdge(t *testing.T) {
	edges := newFakeEdges()
	edges.userCategories[pair{1, 10}] = true
	engine := authz.NewEngine(edges)

	assert.NoError(t, engine.Authorize(context.Background(), 1, authz.KindCategory, 10))

	err := engine.Authorize(context.Background(), 2, authz.KindCategory, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
}

func TestTaskDecisionMatchesEdge(t *testing.T) {
	edges := newFakeEdges()
	edges.userTasks[pair{1, 20}] = true
	engine := authz.NewEngine(edges)

	assert.NoError(t, engine.Authorize(context.Background(), 1, authz.KindTask, 20))
	assert.True(t, apperr.IsForbidden(engine.Authorize(context.Background(), 2, authz.KindTask, 20)))
}

// A subtask decision must equal the parent task decision for every user,
// since no subtask edge exists at all.
func TestSubtaskInheritsParentTaskDecision(t *testing.T) {
	edges := newFakeEdges()
	edges.userTasks[pair{1, 20}] = true
	edges.parents[300] = 20
	engine := authz.NewEngine(edges)

	for _, userID := range []int{1, 2, 99} {
		taskErr := engine.Authorize(context.Background(), userID, authz.KindTask, 20)
		subErr := engine.Authorize(context.Background(), userID, authz.KindSubtask, 300)
		assert.Equal(t, taskErr == nil, subErr == nil, "user %d", userID)
	}
}

// Granting the parent task after the fact must be visible on the next
// subtask check; nothing is cached.
func TestSubtaskInheritanceIsLive(t *testing.T) {
	edges := newFakeEdges()
	edges.parents[300] = 20
	engine := authz.NewEngine(edges)

	assert.True(t, apperr.IsForbidden(engine.Authorize(context.Background(), 5, authz.KindSubtask, 300)))

	edges.userTasks[pair{5, 20}] = true
	assert.NoError(t, engine.Authorize(context.Background(), 5, authz.KindSubtask, 300))
}

func TestSubtaskWithoutParentIsNotFound(t *testing.T) {
	engine := authz.NewEngine(newFakeEdges())
	err := engine.Authorize(context.Background(), 1, authz.KindSubtask, 777)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

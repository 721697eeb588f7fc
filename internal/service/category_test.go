package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
)

func TestCreateCategoryGrantsCreatorStanding(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")

	category := e.createCategory(a.ID, "Work")

	ok, err := e.store.HasUserCategory(context.Background(), a.ID, category.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := e.categories.GetByID(context.Background(), a.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Title)
	assert.False(t, got.IsFavorite)
}

func TestCreateCategoryRejectsBadInput(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")

	_, err := e.categories.Create(context.Background(), a.ID, "", models.ColorBlue)
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = e.categories.Create(context.Background(), a.ID, "Work", models.Color("magenta"))
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestDeleteForeignCategoryIsForbidden(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	b := e.registerUser("b@x.com")
	category := e.createCategory(a.ID, "Work")

	err := e.categories.Delete(context.Background(), b.ID, category.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))

	// Still there for its owner.
	_, err = e.categories.GetByID(context.Background(), a.ID, category.ID)
	assert.NoError(t, err)
}

func TestNotFoundReportedBeforeForbidden(t *testing.T) {
	e := newEnv()
	b := e.registerUser("b@x.com")

	// No category 999 exists; the answer is NotFound, not Forbidden,
	// regardless of who asks.
	err := e.categories.Delete(context.Background(), b.ID, 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestMalformedCategoryIDIsInvalidArgument(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")

	_, err := e.categories.GetByID(context.Background(), a.ID, -3)
	assert.True(t, apperr.IsInvalidArgument(err))
	assert.True(t, apperr.IsInvalidArgument(e.categories.Delete(context.Background(), a.ID, 0)))
}

func TestFavoriteIsIdempotentSet(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	category := e.createCategory(a.ID, "Work")

	first, err := e.categories.Favorite(context.Background(), a.ID, category.ID)
	require.NoError(t, err)
	assert.True(t, first.IsFavorite)

	// A second favorite leaves the flag set, it does not flip it.
	second, err := e.categories.Favorite(context.Background(), a.ID, category.ID)
	require.NoError(t, err)
	assert.True(t, second.IsFavorite)

	cleared, err := e.categories.Unfavorite(context.Background(), a.ID, category.ID)
	require.NoError(t, err)
	assert.False(t, cleared.IsFavorite)
}

func TestListFavoritesFilters(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	work := e.createCategory(a.ID, "Work")
	e.createCategory(a.ID, "Home")

	_, err := e.categories.Favorite(context.Background(), a.ID, work.ID)
	require.NoError(t, err)

	all, err := e.categories.ListByUser(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	favorites, err := e.categories.ListFavorites(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, work.ID, favorites[0].ID)
}

func TestListByUserIsScopedToOwner(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	b := e.registerUser("b@x.com")
	e.createCategory(a.ID, "Work")

	mine, err := e.categories.ListByUser(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestUpdateCategoryRequiresStanding(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	b := e.registerUser("b@x.com")
	category := e.createCategory(a.ID, "Work")

	_, err := e.categories.Update(context.Background(), b.ID, category.ID, "Mine now", models.ColorRed)
	assert.True(t, apperr.IsForbidden(err))

	updated, err := e.categories.Update(context.Background(), a.ID, category.ID, "Deep Work", models.ColorGreen)
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", updated.Title)
	assert.Equal(t, models.ColorGreen, updated.Color)
}

func TestDeleteCategoryKeepsTasks(t *testing.T) {
	e := newEnv()
	a := e.registerUser("a@x.com")
	category := e.createCategory(a.ID, "Work")
	task := e.createTask(a.ID, category.ID, "Ship it")

	require.NoError(t, e.categories.Delete(context.Background(), a.ID, category.ID))

	// The category and its edges are gone, the task survives.
	_, err := e.categories.GetByID(context.Background(), a.ID, category.ID)
	assert.True(t, apperr.IsNotFound(err))

	got, err := e.tasks.GetByID(context.Background(), a.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", got.Title)
}

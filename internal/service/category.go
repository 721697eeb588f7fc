package service

import (
	"context"

	"taskdeck/internal/apperr"
	"taskdeck/internal/authz"
	"taskdeck/internal/models"
)

type CategoryService struct {
	categories CategoryStore
	users      UserStore
	authz      *authz.Engine
}

func NewCategoryService(categories CategoryStore, users UserStore, engine *authz.Engine) *CategoryService {
	return &CategoryService{categories: categories, users: users, authz: engine}
}

func checkID(kind string, id int) error {
	if id <= 0 {
		return apperr.Newf(apperr.InvalidArgument, "the %s id %d is not a valid id", kind, id)
	}
	return nil
}

// Create stores the category and grants the creator the ownership edge in
// one atomic group.
func (s *CategoryService) Create(ctx context.Context, actorID int, title string, color models.Color) (models.Category, error) {
	if title == "" {
		return models.Category{}, apperr.New(apperr.InvalidArgument, "the category title must not be empty")
	}
	if !color.Valid() {
		return models.Category{}, apperr.Newf(apperr.InvalidArgument, "unknown category color %q", color)
	}
	return s.categories.CreateCategoryOwnedBy(ctx, actorID, title, color)
}

func (s *CategoryService) GetByID(ctx context.Context, actorID, categoryID int) (models.Category, error) {
	if err := checkID("category", categoryID); err != nil {
		return models.Category{}, err
	}
	category, err := s.categories.CategoryByID(ctx, categoryID)
	if err != nil {
		return models.Category{}, err
	}
	if err := s.authz.Authorize(ctx, actorID, authz.KindCategory, categoryID); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) ListByUser(ctx context.Context, actorID int) ([]models.Category, error) {
	if _, err := s.users.UserByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.categories.CategoriesByUser(ctx, actorID)
}

func (s *CategoryService) ListFavorites(ctx context.Context, actorID int) ([]models.Category, error) {
	if _, err := s.users.UserByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.categories.FavoriteCategoriesByUser(ctx, actorID)
}

func (s *CategoryService) Update(ctx context.Context, actorID, categoryID int, title string, color models.Color) (models.Category, error) {
	if title == "" {
		return models.Category{}, apperr.New(apperr.InvalidArgument, "the category title must not be empty")
	}
	if !color.Valid() {
		return models.Category{}, apperr.Newf(apperr.InvalidArgument, "unknown category color %q", color)
	}
	if err := s.guard(ctx, actorID, categoryID); err != nil {
		return models.Category{}, err
	}
	return s.categories.UpdateCategory(ctx, categoryID, title, color)
}

func (s *CategoryService) Delete(ctx context.Context, actorID, categoryID int) error {
	if err := s.guard(ctx, actorID, categoryID); err != nil {
		return err
	}
	return s.categories.DeleteCategory(ctx, categoryID)
}

// Favorite and Unfavorite are two-valued sets, not flips: repeating either
// is a no-op.
func (s *CategoryService) Favorite(ctx context.Context, actorID, categoryID int) (models.Category, error) {
	return s.setFavorite(ctx, actorID, categoryID, true)
}

func (s *CategoryService) Unfavorite(ctx context.Context, actorID, categoryID int) (models.Category, error) {
	return s.setFavorite(ctx, actorID, categoryID, false)
}

func (s *CategoryService) setFavorite(ctx context.Context, actorID, categoryID int, favorite bool) (models.Category, error) {
	if err := s.guard(ctx, actorID, categoryID); err != nil {
		return models.Category{}, err
	}
	return s.categories.SetCategoryFavorite(ctx, categoryID, favorite)
}

// guard is the cascading check every mutation starts with: well-formed id,
// existing target, then standing.
func (s *CategoryService) guard(ctx context.Context, actorID, categoryID int) error {
	if err := checkID("category", categoryID); err != nil {
		return err
	}
	if _, err := s.categories.CategoryByID(ctx, categoryID); err != nil {
		return err
	}
	return s.authz.Authorize(ctx, actorID, authz.KindCategory, categoryID)
}

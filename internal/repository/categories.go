package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
)

// CreateCategoryOwnedBy inserts the category and the creator's ownership
// edge as one transaction. A category without an owner edge must never be
// observable.
func (s *Store) CreateCategoryOwnedBy(ctx context.Context, userID int, title string, color models.Color) (models.Category, error) {
	const op = "repository.CreateCategoryOwnedBy"

	var c models.Category
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"INSERT INTO categories (title, color) VALUES ($1, $2) RETURNING id, title, color, is_favorite, created_at",
			title, string(color),
		).Scan(&c.ID, &c.Title, &c.Color, &c.IsFavorite, &c.CreatedAt)
		if err != nil {
			return internalErr(op, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_categories (user_id, category_id) VALUES ($1, $2)", userID, c.ID); err != nil {
			return internalErr(op, err)
		}
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Store) CategoryByID(ctx context.Context, id int) (models.Category, error) {
	const op = "repository.CategoryByID"

	var c models.Category
	if s.cacheGet(ctx, categoryKey(id), &c) {
		return c, nil
	}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, color, is_favorite, created_at FROM categories WHERE id = $1", id,
	).Scan(&c.ID, &c.Title, &c.Color, &c.IsFavorite, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, apperr.Newf(apperr.NotFound, "the category with id %d was not found", id)
		}
		return models.Category{}, internalErr(op, err)
	}
	s.cacheSet(ctx, categoryKey(id), c)
	return c, nil
}

func (s *Store) CategoriesByUser(ctx context.Context, userID int) ([]models.Category, error) {
	const op = "repository.CategoriesByUser"
	return s.scanCategories(ctx, op, `
		SELECT c.id, c.title, c.color, c.is_favorite, c.created_at
		FROM categories c
		JOIN user_categories uc ON uc.category_id = c.id
		WHERE uc.user_id = $1
		ORDER BY c.id`, userID)
}

func (s *Store) FavoriteCategoriesByUser(ctx context.Context, userID int) ([]models.Category, error) {
	const op = "repository.FavoriteCategoriesByUser"
	return s.scanCategories(ctx, op, `
		SELECT c.id, c.title, c.color, c.is_favorite, c.created_at
		FROM categories c
		JOIN user_categories uc ON uc.category_id = c.id
		WHERE uc.user_id = $1 AND c.is_favorite = TRUE
		ORDER BY c.id`, userID)
}

func (s *Store) scanCategories(ctx context.Context, op, query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internalErr(op, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Color, &c.IsFavorite, &c.CreatedAt); err != nil {
			return nil, internalErr(op, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, internalErr(op, err)
	}
	return categories, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id int, title string, color models.Color) (models.Category, error) {
	const op = "repository.UpdateCategory"

	var c models.Category
	err := s.db.QueryRowContext(ctx,
		"UPDATE categories SET title = $1, color = $2 WHERE id = $3 RETURNING id, title, color, is_favorite, created_at",
		title, string(color), id,
	).Scan(&c.ID, &c.Title, &c.Color, &c.IsFavorite, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, apperr.Newf(apperr.NotFound, "the category with id %d was not found", id)
		}
		return models.Category{}, internalErr(op, err)
	}
	s.cacheSet(ctx, categoryKey(id), c)
	return c, nil
}

func (s *Store) SetCategoryFavorite(ctx context.Context, id int, favorite bool) (models.Category, error) {
	const op = "repository.SetCategoryFavorite"

	var c models.Category
	err := s.db.QueryRowContext(ctx,
		"UPDATE categories SET is_favorite = $1 WHERE id = $2 RETURNING id, title, color, is_favorite, created_at",
		favorite, id,
	).Scan(&c.ID, &c.Title, &c.Color, &c.IsFavorite, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, apperr.Newf(apperr.NotFound, "the category with id %d was not found", id)
		}
		return models.Category{}, internalErr(op, err)
	}
	s.cacheSet(ctx, categoryKey(id), c)
	return c, nil
}

// DeleteCategory removes the category row; referential actions drop its
// ownership and structural edges. Tasks survive, only their link to this
// category goes away.
func (s *Store) DeleteCategory(ctx context.Context, id int) error {
	const op = "repository.DeleteCategory"

	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return internalErr(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Newf(apperr.NotFound, "the category with id %d was not found", id)
	}
	s.cacheDel(ctx, categoryKey(id))
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	const op = "repository.CreateUser"

	var u models.User
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (email, name, password) VALUES ($1, $2, $3) RETURNING id, email, name, password, created_at",
		email, name, passwordHash,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.Newf(apperr.Conflict, "the email %q is already registered", email)
		}
		return models.User{}, internalErr(op, err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int) (models.User, error) {
	const op = "repository.UserByID"

	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password, created_at FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.Newf(apperr.NotFound, "the user with id %d was not found", id)
		}
		return models.User{}, internalErr(op, err)
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "repository.UserByEmail"

	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password, created_at FROM users WHERE email = $1", email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.Newf(apperr.NotFound, "the user with email %q was not found", email)
		}
		return models.User{}, internalErr(op, err)
	}
	return u, nil
}

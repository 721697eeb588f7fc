// Package repository is the postgres-backed store. All SQL lives here;
// services see only the method set, never the driver.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/lib/pq"

	"taskdeck/internal/apperr"
)

// Store bundles every persistence operation over one *sql.DB. Multi-write
// creation groups (entity plus its edges) run inside a single transaction
// so no reader can observe a partially created group.
type Store struct {
	db    *sql.DB
	cache *redis.Client
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%s: rollback: %v (after %w)", op, rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}

// isUniqueViolation reports whether err is the postgres duplicate-key error.
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

func internalErr(op string, err error) error {
	return apperr.Wrap(apperr.Internal, op, err)
}

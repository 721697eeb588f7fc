package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskdeck/internal/apperr"
)

// Edge lookups backing the authorization engine. These are existence
// checks only; creation of edges happens inside the entity create groups.

func (s *Store) HasUserCategory(ctx context.Context, userID, categoryID int) (bool, error) {
	const op = "repository.HasUserCategory"

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM user_categories WHERE user_id = $1 AND category_id = $2)",
		userID, categoryID,
	).Scan(&exists)
	if err != nil {
		return false, internalErr(op, err)
	}
	return exists, nil
}

func (s *Store) HasUserTask(ctx context.Context, userID, taskID int) (bool, error) {
	const op = "repository.HasUserTask"

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM user_tasks WHERE user_id = $1 AND task_id = $2)",
		userID, taskID,
	).Scan(&exists)
	if err != nil {
		return false, internalErr(op, err)
	}
	return exists, nil
}

// SubtaskParent resolves a subtask to its owning task id.
func (s *Store) SubtaskParent(ctx context.Context, subtaskID int) (int, error) {
	const op = "repository.SubtaskParent"

	var taskID int
	err := s.db.QueryRowContext(ctx,
		"SELECT task_id FROM subtasks WHERE id = $1", subtaskID,
	).Scan(&taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", subtaskID)
		}
		return 0, internalErr(op, err)
	}
	return taskID, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
)

// CreateTaskInCategory inserts the task row, its structural link to the
// category and the creator's ownership edge in one transaction. Any failure
// rolls the whole group back; a task row without its edges is never visible.
func (s *Store) CreateTaskInCategory(ctx context.Context, userID, categoryID int, title, description string, priority models.Priority) (models.Task, error) {
	const op = "repository.CreateTaskInCategory"

	var t models.Task
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"INSERT INTO tasks (title, description, priority) VALUES ($1, $2, $3) RETURNING id, title, description, priority, is_done",
			title, description, string(priority),
		).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.IsDone)
		if err != nil {
			return internalErr(op, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO task_categories (task_id, category_id) VALUES ($1, $2)", t.ID, categoryID); err != nil {
			return internalErr(op, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_tasks (user_id, task_id) VALUES ($1, $2)", userID, t.ID); err != nil {
			return internalErr(op, err)
		}
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) TaskByID(ctx context.Context, id int) (models.Task, error) {
	const op = "repository.TaskByID"

	var t models.Task
	if s.cacheGet(ctx, taskKey(id), &t) {
		return t, nil
	}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, priority, is_done FROM tasks WHERE id = $1", id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.IsDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, apperr.Newf(apperr.NotFound, "the task with id %d was not found", id)
		}
		return models.Task{}, internalErr(op, err)
	}
	s.cacheSet(ctx, taskKey(id), t)
	return t, nil
}

func (s *Store) TasksByUser(ctx context.Context, userID int) ([]models.Task, error) {
	const op = "repository.TasksByUser"
	return s.scanTasks(ctx, op, `
		SELECT t.id, t.title, t.description, t.priority, t.is_done
		FROM tasks t
		JOIN user_tasks ut ON ut.task_id = t.id
		WHERE ut.user_id = $1
		ORDER BY t.id`, userID)
}

func (s *Store) TasksByCategory(ctx context.Context, categoryID int) ([]models.Task, error) {
	const op = "repository.TasksByCategory"
	return s.scanTasks(ctx, op, `
		SELECT t.id, t.title, t.description, t.priority, t.is_done
		FROM tasks t
		JOIN task_categories tc ON tc.task_id = t.id
		WHERE tc.category_id = $1
		ORDER BY t.id`, categoryID)
}

func (s *Store) DoneTasksByCategory(ctx context.Context, categoryID int) ([]models.Task, error) {
	const op = "repository.DoneTasksByCategory"
	return s.scanTasks(ctx, op, `
		SELECT t.id, t.title, t.description, t.priority, t.is_done
		FROM tasks t
		JOIN task_categories tc ON tc.task_id = t.id
		WHERE tc.category_id = $1 AND t.is_done = TRUE
		ORDER BY t.id`, categoryID)
}

func (s *Store) scanTasks(ctx context.Context, op, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internalErr(op, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.IsDone); err != nil {
			return nil, internalErr(op, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, internalErr(op, err)
	}
	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int, title, description string, priority models.Priority) (models.Task, error) {
	const op = "repository.UpdateTask"

	var t models.Task
	err := s.db.QueryRowContext(ctx,
		"UPDATE tasks SET title = $1, description = $2, priority = $3 WHERE id = $4 RETURNING id, title, description, priority, is_done",
		title, description, string(priority), id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.IsDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, apperr.Newf(apperr.NotFound, "the task with id %d was not found", id)
		}
		return models.Task{}, internalErr(op, err)
	}
	s.cacheSet(ctx, taskKey(id), t)
	return t, nil
}

func (s *Store) SetTaskDone(ctx context.Context, id int, done bool) (models.Task, error) {
	const op = "repository.SetTaskDone"

	var t models.Task
	err := s.db.QueryRowContext(ctx,
		"UPDATE tasks SET is_done = $1 WHERE id = $2 RETURNING id, title, description, priority, is_done",
		done, id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.IsDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, apperr.Newf(apperr.NotFound, "the task with id %d was not found", id)
		}
		return models.Task{}, internalErr(op, err)
	}
	s.cacheSet(ctx, taskKey(id), t)
	return t, nil
}

// DeleteTask removes the task row; subtasks and edges cascade with it.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	const op = "repository.DeleteTask"

	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return internalErr(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Newf(apperr.NotFound, "the task with id %d was not found", id)
	}
	s.cacheDel(ctx, taskKey(id))
	return nil
}

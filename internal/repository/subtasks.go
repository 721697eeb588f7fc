package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
)

func (s *Store) CreateSubtask(ctx context.Context, taskID int, title string) (models.Subtask, error) {
	const op = "repository.CreateSubtask"

	var st models.Subtask
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO subtasks (title, task_id) VALUES ($1, $2) RETURNING id, title, task_id, is_done",
		title, taskID,
	).Scan(&st.ID, &st.Title, &st.TaskID, &st.IsDone)
	if err != nil {
		return models.Subtask{}, internalErr(op, err)
	}
	return st, nil
}

func (s *Store) SubtaskByID(ctx context.Context, id int) (models.Subtask, error) {
	const op = "repository.SubtaskByID"

	var st models.Subtask
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, task_id, is_done FROM subtasks WHERE id = $1", id,
	).Scan(&st.ID, &st.Title, &st.TaskID, &st.IsDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subtask{}, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", id)
		}
		return models.Subtask{}, internalErr(op, err)
	}
	return st, nil
}

func (s *Store) SubtasksByTask(ctx context.Context, taskID int) ([]models.Subtask, error) {
	const op = "repository.SubtasksByTask"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, task_id, is_done FROM subtasks WHERE task_id = $1 ORDER BY id", taskID)
	if err != nil {
		return nil, internalErr(op, err)
	}
	defer rows.Close()

	subtasks := []models.Subtask{}
	for rows.Next() {
		var st models.Subtask
		if err := rows.Scan(&st.ID, &st.Title, &st.TaskID, &st.IsDone); err != nil {
			return nil, internalErr(op, err)
		}
		subtasks = append(subtasks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, internalErr(op, err)
	}
	return subtasks, nil
}

func (s *Store) UpdateSubtask(ctx context.Context, id int, title string) (models.Subtask, error) {
	const op = "repository.UpdateSubtask"

	var st models.Subtask
	err := s.db.QueryRowContext(ctx,
		"UPDATE subtasks SET title = $1 WHERE id = $2 RETURNING id, title, task_id, is_done",
		title, id,
	).Scan(&st.ID, &st.Title, &st.TaskID, &st.IsDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subtask{}, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", id)
		}
		return models.Subtask{}, internalErr(op, err)
	}
	return st, nil
}

func (s *Store) SetSubtaskDone(ctx context.Context, id int, done bool) (models.Subtask, error) {
	const op = "repository.SetSubtaskDone"

	var st models.Subtask
	err := s.db.QueryRowContext(ctx,
		"UPDATE subtasks SET is_done = $1 WHERE id = $2 RETURNING id, title, task_id, is_done",
		done, id,
	).Scan(&st.ID, &st.Title, &st.TaskID, &st.IsDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subtask{}, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", id)
		}
		return models.Subtask{}, internalErr(op, err)
	}
	return st, nil
}

func (s *Store) DeleteSubtask(ctx context.Context, id int) error {
	const op = "repository.DeleteSubtask"

	res, err := s.db.ExecContext(ctx, "DELETE FROM subtasks WHERE id = $1", id)
	if err != nil {
		return internalErr(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", id)
	}
	return nil
}

// Package memory is an in-process store with the same method set as the
// postgres repository. It backs the unit tests and makes the server
// runnable without a database for local experiments.
package memory

import (
	"context"
	"sync"
	"time"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
)

type edge struct{ a, b int }

type Store struct {
	mu sync.Mutex

	users      map[int]models.User
	categories map[int]models.Category
	tasks      map[int]models.Task
	subtasks   map[int]models.Subtask

	userCategories map[edge]bool
	userTasks      map[edge]bool
	taskCategories map[edge]bool

	nextUser     int
	nextCategory int
	nextTask     int
	nextSubtask  int
}

func NewStore() *Store {
	return &Store{
		users:          map[int]models.User{},
		categories:     map[int]models.Category{},
		tasks:          map[int]models.Task{},
		subtasks:       map[int]models.Subtask{},
		userCategories: map[edge]bool{},
		userTasks:      map[edge]bool{},
		taskCategories: map[edge]bool{},
	}
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, email, name, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, apperr.Newf(apperr.Conflict, "the email %q is already registered", email)
		}
	}
	s.nextUser++
	u := models.User{ID: s.nextUser, Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UserByID(_ context.Context, id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, apperr.Newf(apperr.NotFound, "the user with id %d was not found", id)
	}
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperr.Newf(apperr.NotFound, "the user with email %q was not found", email)
}

// --- categories ---

func (s *Store) CreateCategoryOwnedBy(_ context.Context, userID int, title string, color models.Color) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCategory++
	c := models.Category{ID: s.nextCategory, Title: title, Color: color, CreatedAt: time.Now()}
	s.categories[c.ID] = c
	s.userCategories[edge{userID, c.ID}] = true
	return c, nil
}

func (s *Store) CategoryByID(_ context.Context, id int) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryByIDLocked(id)
}

func (s *Store) categoryByIDLocked(id int) (models.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return models.Category{}, apperr.Newf(apperr.NotFound, "the category with id %d was not found", id)
	}
	return c, nil
}

func (s *Store) CategoriesByUser(_ context.Context, userID int) ([]models.Category, error) {
	return s.listCategories(userID, false)
}

func (s *Store) FavoriteCategoriesByUser(_ context.Context, userID int) ([]models.Category, error) {
	return s.listCategories(userID, true)
}

func (s *Store) listCategories(userID int, favoritesOnly bool) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Category{}
	for id := 1; id <= s.nextCategory; id++ {
		c, ok := s.categories[id]
		if !ok || !s.userCategories[edge{userID, id}] {
			continue
		}
		if favoritesOnly && !c.IsFavorite {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) UpdateCategory(_ context.Context, id int, title string, color models.Color) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.categoryByIDLocked(id)
	if err != nil {
		return models.Category{}, err
	}
	c.Title, c.Color = title, color
	s.categories[id] = c
	return c, nil
}

func (s *Store) SetCategoryFavorite(_ context.Context, id int, favorite bool) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.categoryByIDLocked(id)
	if err != nil {
		return models.Category{}, err
	}
	c.IsFavorite = favorite
	s.categories[id] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return apperr.Newf(apperr.NotFound, "the category with id %d was not found", id)
	}
	delete(s.categories, id)
	for e := range s.userCategories {
		if e.b == id {
			delete(s.userCategories, e)
		}
	}
	for e := range s.taskCategories {
		if e.b == id {
			delete(s.taskCategories, e)
		}
	}
	return nil
}

// --- tasks ---

func (s *Store) CreateTaskInCategory(_ context.Context, userID, categoryID int, title, description string, priority models.Priority) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirrors the transactional group in the SQL store: refuse the whole
	// create when the category is gone so no dangling edge appears.
	if _, ok := s.categories[categoryID]; !ok {
		return models.Task{}, apperr.Newf(apperr.NotFound, "the category with id %d was not found", categoryID)
	}
	s.nextTask++
	t := models.Task{ID: s.nextTask, Title: title, Description: description, Priority: priority}
	s.tasks[t.ID] = t
	s.taskCategories[edge{t.ID, categoryID}] = true
	s.userTasks[edge{userID, t.ID}] = true
	return t, nil
}

func (s *Store) TaskByID(_ context.Context, id int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskByIDLocked(id)
}

func (s *Store) taskByIDLocked(id int) (models.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, apperr.Newf(apperr.NotFound, "the task with id %d was not found", id)
	}
	return t, nil
}

func (s *Store) TasksByUser(_ context.Context, userID int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Task{}
	for id := 1; id <= s.nextTask; id++ {
		if _, ok := s.tasks[id]; ok && s.userTasks[edge{userID, id}] {
			out = append(out, s.tasks[id])
		}
	}
	return out, nil
}

func (s *Store) TasksByCategory(_ context.Context, categoryID int) ([]models.Task, error) {
	return s.listTasksByCategory(categoryID, false)
}

func (s *Store) DoneTasksByCategory(_ context.Context, categoryID int) ([]models.Task, error) {
	return s.listTasksByCategory(categoryID, true)
}

func (s *Store) listTasksByCategory(categoryID int, doneOnly bool) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Task{}
	for id := 1; id <= s.nextTask; id++ {
		t, ok := s.tasks[id]
		if !ok || !s.taskCategories[edge{id, categoryID}] {
			continue
		}
		if doneOnly && !t.IsDone {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) UpdateTask(_ context.Context, id int, title, description string, priority models.Priority) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.taskByIDLocked(id)
	if err != nil {
		return models.Task{}, err
	}
	t.Title, t.Description, t.Priority = title, description, priority
	s.tasks[id] = t
	return t, nil
}

func (s *Store) SetTaskDone(_ context.Context, id int, done bool) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.taskByIDLocked(id)
	if err != nil {
		return models.Task{}, err
	}
	t.IsDone = done
	s.tasks[id] = t
	return t, nil
}

func (s *Store) DeleteTask(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return apperr.Newf(apperr.NotFound, "the task with id %d was not found", id)
	}
	delete(s.tasks, id)
	for e := range s.userTasks {
		if e.b == id {
			delete(s.userTasks, e)
		}
	}
	for e := range s.taskCategories {
		if e.a == id {
			delete(s.taskCategories, e)
		}
	}
	for sid, st := range s.subtasks {
		if st.TaskID == id {
			delete(s.subtasks, sid)
		}
	}
	return nil
}

// --- subtasks ---

func (s *Store) CreateSubtask(_ context.Context, taskID int, title string) (models.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubtask++
	st := models.Subtask{ID: s.nextSubtask, Title: title, TaskID: taskID}
	s.subtasks[st.ID] = st
	return st, nil
}

func (s *Store) SubtaskByID(_ context.Context, id int) (models.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtaskByIDLocked(id)
}

func (s *Store) subtaskByIDLocked(id int) (models.Subtask, error) {
	st, ok := s.subtasks[id]
	if !ok {
		return models.Subtask{}, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", id)
	}
	return st, nil
}

func (s *Store) SubtasksByTask(_ context.Context, taskID int) ([]models.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Subtask{}
	for id := 1; id <= s.nextSubtask; id++ {
		if st, ok := s.subtasks[id]; ok && st.TaskID == taskID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Store) UpdateSubtask(_ context.Context, id int, title string) (models.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.subtaskByIDLocked(id)
	if err != nil {
		return models.Subtask{}, err
	}
	st.Title = title
	s.subtasks[id] = st
	return st, nil
}

func (s *Store) SetSubtaskDone(_ context.Context, id int, done bool) (models.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.subtaskByIDLocked(id)
	if err != nil {
		return models.Subtask{}, err
	}
	st.IsDone = done
	s.subtasks[id] = st
	return st, nil
}

func (s *Store) DeleteSubtask(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subtasks[id]; !ok {
		return apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", id)
	}
	delete(s.subtasks, id)
	return nil
}

// --- edges ---

func (s *Store) HasUserCategory(_ context.Context, userID, categoryID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCategories[edge{userID, categoryID}], nil
}

func (s *Store) HasUserTask(_ context.Context, userID, taskID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userTasks[edge{userID, taskID}], nil
}

func (s *Store) SubtaskParent(_ context.Context, subtaskID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.subtasks[subtaskID]
	if !ok {
		return 0, apperr.Newf(apperr.NotFound, "the subtask with id %d was not found", subtaskID)
	}
	return st.TaskID, nil
}

// GrantTask adds a bare ownership edge, the out-of-band grant the domain
// services themselves never perform. Used by tests and fixtures to model
// co-ownership.
func (s *Store) GrantTask(userID, taskID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userTasks[edge{userID, taskID}] = true
}

// GrantCategory is the category counterpart of GrantTask.
func (s *Store) GrantCategory(userID, categoryID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userCategories[edge{userID, categoryID}] = true
}

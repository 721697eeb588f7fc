package models

import "time"

// Color is the palette a category can be labeled with.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

func (c Color) Valid() bool {
	switch c {
	case ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Color      Color     `json:"color"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	IsDone      bool     `json:"is_done"`
}

type Subtask struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	TaskID int    `json:"task_id"`
	IsDone bool   `json:"is_done"`
}

// UserCategory and UserTask are ownership edges: holding one is the sole
// basis for being allowed to touch the category or task it points at.
type UserCategory struct {
	UserID     int `json:"user_id"`
	CategoryID int `json:"category_id"`
}

type UserTask struct {
	UserID int `json:"user_id"`
	TaskID int `json:"task_id"`
}

// TaskCategory links a task to the category it was created in. It carries
// no authorization meaning.
type TaskCategory struct {
	TaskID     int `json:"task_id"`
	CategoryID int `json:"category_id"`
}

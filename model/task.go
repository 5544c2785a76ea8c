package model

import "time"

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsDone      bool       `json:"is_done"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *int       `json:"priority"`
	UserID      int        `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskPage is one page of a filtered task listing.
type TaskPage struct {
	Items []*Task `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Size  int     `json:"size"`
	Pages int     `json:"pages"`
}

// TaskFilter narrows a task listing. Nil fields are not applied. Title and
// Description match as case-insensitive substrings; the remaining bounds are
// inclusive.
type TaskFilter struct {
	Title        *string
	Description  *string
	IsDone       *bool
	PriorityGTE  *int
	PriorityLTE  *int
	CreatedAtGTE *time.Time
	CreatedAtLTE *time.Time
	DueDateGTE   *time.Time
	DueDateLTE   *time.Time
}

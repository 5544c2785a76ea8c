// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=50"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// UpdateUserRequest defines the payload for a partial user update.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=50"`
	Password *string `json:"password" validate:"omitempty,min=6,max=50"`
}

// CreateTaskRequest defines the payload for creating a task. The due date is
// accepted as a plain calendar date.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    *int    `json:"priority"`
}

// UpdateTaskRequest defines the payload for a partial task update.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    *int    `json:"priority"`
}

package repository

import (
	"database/sql"
	"fmt"
	"go-task-api/logger"
	"go-task-api/model"
	"strings"

	"github.com/sirupsen/logrus"
)

// ITaskRepository defines the contract for task persistence.
type ITaskRepository interface {
	Create(task *model.Task) error
	GetByID(id int) (*model.Task, error)
	ListByUserFiltered(userID int, filter model.TaskFilter, page, size int) ([]*model.Task, int, error)
	Update(task *model.Task) error
	Delete(id int) error
}

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.Task) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": task.UserID,
		"title":   task.Title,
	})

	query := `INSERT INTO tasks (title, description, is_done, due_date, priority, user_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, task.Title, task.Description, task.IsDone, task.DueDate, task.Priority, task.UserID).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create task query")
		return err
	}
	return nil
}

func (r *TaskRepository) GetByID(id int) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT id, title, description, is_done, due_date, priority, user_id, created_at, updated_at FROM tasks WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&task.ID, &task.Title, &task.Description, &task.IsDone,
		&task.DueDate, &task.Priority, &task.UserID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// buildTaskFilter turns the optional filter fields into WHERE conditions.
// The first positional argument is always the owning user id.
func buildTaskFilter(userID int, filter model.TaskFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	add := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Title != nil {
		add("title ILIKE '%%' || $%d || '%%'", *filter.Title)
	}
	if filter.Description != nil {
		add("description ILIKE '%%' || $%d || '%%'", *filter.Description)
	}
	if filter.IsDone != nil {
		add("is_done = $%d", *filter.IsDone)
	}
	if filter.PriorityGTE != nil {
		add("priority >= $%d", *filter.PriorityGTE)
	}
	if filter.PriorityLTE != nil {
		add("priority <= $%d", *filter.PriorityLTE)
	}
	if filter.CreatedAtGTE != nil {
		add("created_at >= $%d", *filter.CreatedAtGTE)
	}
	if filter.CreatedAtLTE != nil {
		add("created_at <= $%d", *filter.CreatedAtLTE)
	}
	if filter.DueDateGTE != nil {
		add("due_date >= $%d", *filter.DueDateGTE)
	}
	if filter.DueDateLTE != nil {
		add("due_date <= $%d", *filter.DueDateLTE)
	}

	return strings.Join(conditions, " AND "), args
}

// ListByUserFiltered returns one page of the user's tasks matching the filter
// together with the total match count. Page numbering is 1-based.
func (r *TaskRepository) ListByUserFiltered(userID int, filter model.TaskFilter, page, size int) ([]*model.Task, int, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"page":    page,
		"size":    size,
	})

	where, args := buildTaskFilter(userID, filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks WHERE ` + where
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		log.WithError(err).Error("Failed to execute count tasks query")
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		`SELECT id, title, description, is_done, due_date, priority, user_id, created_at, updated_at FROM tasks WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	rows, err := r.DB.Query(listQuery, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute list tasks query")
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsDone, &t.DueDate, &t.Priority,
			&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			log.WithError(err).Error("Failed to scan task row")
			return nil, 0, err
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(task *model.Task) error {
	query := `UPDATE tasks SET title = $1, description = $2, is_done = $3, due_date = $4, priority = $5, updated_at = NOW() WHERE id = $6 RETURNING updated_at`
	err := r.DB.QueryRow(query, task.Title, task.Description, task.IsDone, task.DueDate, task.Priority, task.ID).
		Scan(&task.UpdatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", task.ID).Error("Failed to execute update task query")
		return err
	}
	return nil
}

func (r *TaskRepository) Delete(id int) error {
	query := `DELETE FROM tasks WHERE id = $1`
	_, err := r.DB.Exec(query, id)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id).Error("Failed to execute delete task query")
		return err
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"go-task-api/logger"
	"go-task-api/model"
	"go-task-api/repository"
	"time"

	"github.com/redis/go-redis/v9"
)

const taskListCacheTTL = 5 * time.Minute

// ITaskService defines the contract for task operations. Every per-task
// method checks that the task belongs to the requesting user before acting.
type ITaskService interface {
	Create(ctx context.Context, userID int, req model.CreateTaskRequest) (*model.Task, error)
	GetForUser(ctx context.Context, requesterID, taskID int) (*model.Task, error)
	ListForUser(ctx context.Context, userID int, filter model.TaskFilter, page, size int) (*model.TaskPage, error)
	UpdateForUser(ctx context.Context, requesterID, taskID int, req model.UpdateTaskRequest) (*model.Task, error)
	DeleteForUser(ctx context.Context, requesterID, taskID int) error
	ToggleDoneForUser(ctx context.Context, requesterID, taskID int) (*model.Task, error)
}

type TaskService struct {
	tasks repository.ITaskRepository
	cache ICacheClient
}

// NewTaskService creates a TaskService. The cache client may be nil, in which
// case listings always hit the database.
func NewTaskService(tasks repository.ITaskRepository, cache ICacheClient) *TaskService {
	return &TaskService{tasks: tasks, cache: cache}
}

func taskListCacheKey(userID int) string {
	return fmt.Sprintf("tasks:%d", userID)
}

// invalidateListCache drops the cached first page for the user. Cache errors
// are logged and swallowed; the database remains the source of truth.
func (s *TaskService) invalidateListCache(ctx context.Context, userID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, taskListCacheKey(userID)).Err(); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate task list cache")
	}
}

// getOwned resolves a task and enforces ownership: only the user the task
// belongs to may act on it.
func (s *TaskService) getOwned(requesterID, taskID int) (*model.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	task, err := s.tasks.GetByID(taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != requesterID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (s *TaskService) Create(ctx context.Context, userID int, req model.CreateTaskRequest) (*model.Task, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    req.Priority,
		UserID:      userID,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, userID)
	return task, nil
}

func (s *TaskService) GetForUser(ctx context.Context, requesterID, taskID int) (*model.Task, error) {
	return s.getOwned(requesterID, taskID)
}

// ListForUser returns one page of the user's tasks. The unfiltered first page
// is served cache-aside; filtered or deeper pages go straight to the
// database.
func (s *TaskService) ListForUser(ctx context.Context, userID int, filter model.TaskFilter, page, size int) (*model.TaskPage, error) {
	cacheable := s.cache != nil && filter == (model.TaskFilter{}) && page == 1

	if cacheable {
		cached, err := s.cache.Get(ctx, taskListCacheKey(userID)).Result()
		if err == nil {
			var result model.TaskPage
			if err := json.Unmarshal([]byte(cached), &result); err == nil && result.Size == size {
				return &result, nil
			}
		} else if err != redis.Nil {
			logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to read task list cache")
		}
	}

	tasks, total, err := s.tasks.ListByUserFiltered(userID, filter, page, size)
	if err != nil {
		return nil, err
	}
	// An empty page serializes as [], not null.
	if tasks == nil {
		tasks = []*model.Task{}
	}

	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	result := &model.TaskPage{
		Items: tasks,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}

	if cacheable {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, taskListCacheKey(userID), payload, taskListCacheTTL).Err(); err != nil {
				logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to write task list cache")
			}
		}
	}

	return result, nil
}

func (s *TaskService) UpdateForUser(ctx context.Context, requesterID, taskID int, req model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.getOwned(requesterID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}
	if req.Priority != nil {
		task.Priority = req.Priority
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, requesterID)
	return task, nil
}

func (s *TaskService) DeleteForUser(ctx context.Context, requesterID, taskID int) error {
	task, err := s.getOwned(requesterID, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(task.ID); err != nil {
		return err
	}
	s.invalidateListCache(ctx, requesterID)
	return nil
}

// ToggleDoneForUser flips the task's completion flag.
func (s *TaskService) ToggleDoneForUser(ctx context.Context, requesterID, taskID int) (*model.Task, error) {
	task, err := s.getOwned(requesterID, taskID)
	if err != nil {
		return nil, err
	}

	task.IsDone = !task.IsDone
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, requesterID)
	return task, nil
}

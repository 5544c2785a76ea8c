// file: service/task_service_test.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"go-task-api/model"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) Create(task *model.Task) error {
	args := m.Called(task)
	return args.Error(0)
}
func (m *mockTaskRepo) GetByID(id int) (*model.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}
func (m *mockTaskRepo) ListByUserFiltered(userID int, filter model.TaskFilter, page, size int) ([]*model.Task, int, error) {
	args := m.Called(userID, filter, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Task), args.Int(1), args.Error(2)
}
func (m *mockTaskRepo) Update(task *model.Task) error {
	args := m.Called(task)
	return args.Error(0)
}
func (m *mockTaskRepo) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the owner and parses the due date", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		mockRepo.On("Create", mock.MatchedBy(func(task *model.Task) bool {
			return task.UserID == 5 && task.Title == "Buy milk" &&
				task.DueDate != nil && task.DueDate.Format("2006-01-02") == "2026-09-15"
		})).Return(nil).Once()

		taskService := NewTaskService(mockRepo, nil)
		dueDate := "2026-09-15"
		task, err := taskService.Create(ctx, 5, model.CreateTaskRequest{Title: "Buy milk", DueDate: &dueDate})

		assert.NoError(t, err)
		assert.Equal(t, 5, task.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid due date", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		taskService := NewTaskService(mockRepo, nil)

		badDate := "15/09/2026"
		_, err := taskService.Create(ctx, 5, model.CreateTaskRequest{Title: "Buy milk", DueDate: &badDate})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

// TestTaskService_OwnershipGuard pins the corrected ownership polarity: the
// owner is allowed through, anyone else is rejected.
func TestTaskService_OwnershipGuard(t *testing.T) {
	ctx := context.Background()
	task := &model.Task{ID: 3, Title: "Private task", UserID: 10}

	t.Run("owner may read", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		mockRepo.On("GetByID", 3).Return(task, nil).Once()

		taskService := NewTaskService(mockRepo, nil)
		got, err := taskService.GetForUser(ctx, 10, 3)

		assert.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		mockRepo.On("GetByID", 3).Return(task, nil).Times(4)

		taskService := NewTaskService(mockRepo, nil)

		_, err := taskService.GetForUser(ctx, 11, 3)
		assert.ErrorIs(t, err, ErrNotTaskOwner)

		_, err = taskService.UpdateForUser(ctx, 11, 3, model.UpdateTaskRequest{})
		assert.ErrorIs(t, err, ErrNotTaskOwner)

		err = taskService.DeleteForUser(ctx, 11, 3)
		assert.ErrorIs(t, err, ErrNotTaskOwner)

		_, err = taskService.ToggleDoneForUser(ctx, 11, 3)
		assert.ErrorIs(t, err, ErrNotTaskOwner)

		mockRepo.AssertNotCalled(t, "Update")
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("non-positive id", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		taskService := NewTaskService(mockRepo, nil)

		_, err := taskService.GetForUser(ctx, 10, 0)
		assert.ErrorIs(t, err, ErrInvalidTaskID)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("missing task", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		mockRepo.On("GetByID", 404).Return(nil, sql.ErrNoRows).Once()

		taskService := NewTaskService(mockRepo, nil)
		_, err := taskService.GetForUser(ctx, 10, 404)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskService_ToggleDone(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(mockTaskRepo)
	mockRepo.On("GetByID", 6).Return(&model.Task{ID: 6, UserID: 2, IsDone: false}, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(task *model.Task) bool {
		return task.ID == 6 && task.IsDone
	})).Return(nil).Once()

	taskService := NewTaskService(mockRepo, nil)
	task, err := taskService.ToggleDoneForUser(ctx, 2, 6)

	assert.NoError(t, err)
	assert.True(t, task.IsDone)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	description := "original description"
	existing := &model.Task{ID: 9, Title: "Old title", Description: &description, UserID: 2}

	mockRepo := new(mockTaskRepo)
	mockRepo.On("GetByID", 9).Return(existing, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "New title" && task.Description != nil && *task.Description == "original description"
	})).Return(nil).Once()

	taskService := NewTaskService(mockRepo, nil)
	newTitle := "New title"
	task, err := taskService.UpdateForUser(ctx, 2, 9, model.UpdateTaskRequest{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, "New title", task.Title)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_ListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("page arithmetic", func(t *testing.T) {
		mockRepo := new(mockTaskRepo)
		items := []*model.Task{{ID: 1, UserID: 2}, {ID: 2, UserID: 2}}
		mockRepo.On("ListByUserFiltered", 2, model.TaskFilter{}, 1, 2).Return(items, 5, nil).Once()

		taskService := NewTaskService(mockRepo, nil)
		page, err := taskService.ListForUser(ctx, 2, model.TaskFilter{}, 1, 2)

		assert.NoError(t, err)
		assert.Equal(t, 5, page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.Len(t, page.Items, 2)
	})

	t.Run("filter is passed through", func(t *testing.T) {
		isDone := true
		priorityGTE := 3
		filter := model.TaskFilter{IsDone: &isDone, PriorityGTE: &priorityGTE}

		mockRepo := new(mockTaskRepo)
		mockRepo.On("ListByUserFiltered", 2, filter, 2, 10).Return([]*model.Task{}, 0, nil).Once()

		taskService := NewTaskService(mockRepo, nil)
		page, err := taskService.ListForUser(ctx, 2, filter, 2, 10)

		assert.NoError(t, err)
		assert.Equal(t, 0, page.Total)
		mockRepo.AssertExpectations(t)
	})
}

// fakeCacheClient is an in-memory ICacheClient recording writes and
// invalidations.
type fakeCacheClient struct {
	data   map[string]string
	getErr error
	sets   []string
	dels   []string
}

func newFakeCacheClient() *fakeCacheClient {
	return &fakeCacheClient{data: map[string]string{}}
}

func (f *fakeCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets = append(f.sets, key)
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.dels = append(f.dels, keys...)
	for _, key := range keys {
		delete(f.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestTaskService_ListCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss fills the cache, hit skips the database", func(t *testing.T) {
		cache := newFakeCacheClient()
		mockRepo := new(mockTaskRepo)
		items := []*model.Task{{ID: 1, Title: "Cached", UserID: 2}}
		mockRepo.On("ListByUserFiltered", 2, model.TaskFilter{}, 1, 50).Return(items, 1, nil).Once()

		taskService := NewTaskService(mockRepo, cache)

		first, err := taskService.ListForUser(ctx, 2, model.TaskFilter{}, 1, 50)
		assert.NoError(t, err)
		assert.Equal(t, []string{"tasks:2"}, cache.sets)

		second, err := taskService.ListForUser(ctx, 2, model.TaskFilter{}, 1, 50)
		assert.NoError(t, err)
		assert.Equal(t, first.Total, second.Total)
		assert.Len(t, second.Items, 1)
		assert.Equal(t, "Cached", second.Items[0].Title)
		mockRepo.AssertNumberOfCalls(t, "ListByUserFiltered", 1)
	})

	t.Run("filtered and deeper pages bypass the cache", func(t *testing.T) {
		cache := newFakeCacheClient()
		mockRepo := new(mockTaskRepo)
		isDone := true
		filter := model.TaskFilter{IsDone: &isDone}
		mockRepo.On("ListByUserFiltered", 2, filter, 1, 50).Return([]*model.Task{}, 0, nil).Once()
		mockRepo.On("ListByUserFiltered", 2, model.TaskFilter{}, 2, 50).Return([]*model.Task{}, 0, nil).Once()

		taskService := NewTaskService(mockRepo, cache)

		_, err := taskService.ListForUser(ctx, 2, filter, 1, 50)
		assert.NoError(t, err)
		_, err = taskService.ListForUser(ctx, 2, model.TaskFilter{}, 2, 50)
		assert.NoError(t, err)

		assert.Empty(t, cache.sets)
		mockRepo.AssertExpectations(t)
	})

	t.Run("mutations invalidate the listing", func(t *testing.T) {
		cache := newFakeCacheClient()
		mockRepo := new(mockTaskRepo)
		mockRepo.On("Create", mock.Anything).Return(nil).Once()

		taskService := NewTaskService(mockRepo, cache)
		_, err := taskService.Create(ctx, 2, model.CreateTaskRequest{Title: "Fresh"})

		assert.NoError(t, err)
		assert.Equal(t, []string{"tasks:2"}, cache.dels)
	})

	t.Run("read error falls back to the database", func(t *testing.T) {
		cache := newFakeCacheClient()
		cache.getErr = errors.New("connection refused")
		mockRepo := new(mockTaskRepo)
		mockRepo.On("ListByUserFiltered", 2, model.TaskFilter{}, 1, 50).Return([]*model.Task{{ID: 4, UserID: 2}}, 1, nil).Once()

		taskService := NewTaskService(mockRepo, cache)
		page, err := taskService.ListForUser(ctx, 2, model.TaskFilter{}, 1, 50)

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		mockRepo.AssertExpectations(t)
	})
}

// An empty listing must serialize its items as [], never null.
func TestTaskService_EmptyPageSerializesItemsAsArray(t *testing.T) {
	mockRepo := new(mockTaskRepo)
	mockRepo.On("ListByUserFiltered", 2, model.TaskFilter{}, 1, 50).Return(nil, 0, nil).Once()

	taskService := NewTaskService(mockRepo, nil)
	page, err := taskService.ListForUser(context.Background(), 2, model.TaskFilter{}, 1, 50)

	assert.NoError(t, err)
	assert.NotNil(t, page.Items)

	payload, err := json.Marshal(page)
	assert.NoError(t, err)
	assert.Contains(t, string(payload), `"items":[]`)
}

func TestParseDueDate(t *testing.T) {
	valid := "2026-01-31"
	parsed, err := parseDueDate(&valid)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), *parsed)

	parsed, err = parseDueDate(nil)
	assert.NoError(t, err)
	assert.Nil(t, parsed)
}

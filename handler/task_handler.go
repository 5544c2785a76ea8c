package handler

import (
	"errors"
	"go-task-api/common"
	"go-task-api/model"
	"go-task-api/service"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type TaskHandler struct {
	tasks service.ITaskService
}

func NewTaskHandler(tasks service.ITaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func taskError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidTaskID):
		return common.NewAppError(http.StatusBadRequest, "Task Id is required", nil)
	case errors.Is(err, service.ErrTaskNotFound):
		return common.NewAppError(http.StatusNotFound, "Task not found", nil)
	case errors.Is(err, service.ErrNotTaskOwner):
		// Ownership violations answer with 409, matching the rest of the API
		// surface this service replaces.
		return common.NewAppError(http.StatusConflict, "You are not authorized to access this task", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Error in server! Please try again later", err)
	}
}

func requesterID(r *http.Request) (int, *common.AppError) {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return 0, common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
	}
	return userID, nil
}

func taskID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("task_id"))
	if err != nil || id <= 0 {
		return 0, common.NewAppError(http.StatusBadRequest, "Task Id is required", nil)
	}
	return id, nil
}

// parseTaskFilter reads the optional filter query parameters. Timestamps are
// RFC 3339, dates are plain calendar dates.
func parseTaskFilter(query url.Values) (model.TaskFilter, error) {
	var filter model.TaskFilter

	if v := query.Get("title"); v != "" {
		filter.Title = &v
	}
	if v := query.Get("description"); v != "" {
		filter.Description = &v
	}
	if v := query.Get("is_done"); v != "" {
		isDone, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.IsDone = &isDone
	}

	for param, target := range map[string]**int{
		"priority_gte": &filter.PriorityGTE,
		"priority_lte": &filter.PriorityLTE,
	} {
		if v := query.Get(param); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return filter, err
			}
			*target = &n
		}
	}

	for param, spec := range map[string]struct {
		layout string
		target **time.Time
	}{
		"created_at_gte": {time.RFC3339, &filter.CreatedAtGTE},
		"created_at_lte": {time.RFC3339, &filter.CreatedAtLTE},
		"due_date_gte":   {"2006-01-02", &filter.DueDateGTE},
		"due_date_lte":   {"2006-01-02", &filter.DueDateLTE},
	} {
		if v := query.Get(param); v != "" {
			t, err := time.Parse(spec.layout, v)
			if err != nil {
				return filter, err
			}
			*spec.target = &t
		}
	}

	return filter, nil
}

func parsePagination(query url.Values) (page, size int, err error) {
	page, size = 1, defaultPageSize

	if v := query.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}
	if v := query.Get("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil || size < 1 || size > maxPageSize {
			return 0, 0, errors.New("size must be between 1 and 100")
		}
	}
	return page, size, nil
}

// Create godoc
// @Summary      Create a task for the authenticated user
// @Tags         task
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateTaskRequest true "New task"
// @Success      201 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Router       /api/v1/task [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := requesterID(r)
	if appErr != nil {
		return appErr
	}

	var req model.CreateTaskRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	task, err := h.tasks.Create(r.Context(), userID, req)
	if err != nil {
		return taskError(err)
	}

	common.WriteResponse(w, http.StatusCreated, "Task created successfully", task)
	return nil
}

// List godoc
// @Summary      List the authenticated user's tasks, filtered and paginated
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        title query string false "Title substring (case-insensitive)"
// @Param        description query string false "Description substring (case-insensitive)"
// @Param        is_done query bool false "Completion status"
// @Param        priority_gte query int false "Minimum priority"
// @Param        priority_lte query int false "Maximum priority"
// @Param        page query int false "Page number (1-based)"
// @Param        size query int false "Page size (max 100)"
// @Success      200 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Router       /api/v1/task [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := requesterID(r)
	if appErr != nil {
		return appErr
	}

	filter, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid filter parameters", err)
	}
	page, size, err := parsePagination(r.URL.Query())
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	}

	result, err := h.tasks.ListForUser(r.Context(), userID, filter, page, size)
	if err != nil {
		return taskError(err)
	}

	common.WriteResponse(w, http.StatusOK, "Tasks found successfully", result)
	return nil
}

// Get godoc
// @Summary      Read a single task
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        task_id path int true "Task id"
// @Success      200 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Failure      409 {object} common.ResponseBody
// @Router       /api/v1/task/{task_id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := requesterID(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := taskID(r)
	if appErr != nil {
		return appErr
	}

	task, err := h.tasks.GetForUser(r.Context(), userID, id)
	if err != nil {
		return taskError(err)
	}

	common.WriteResponse(w, http.StatusOK, "Task found successfully", task)
	return nil
}

// Update godoc
// @Summary      Update a task
// @Tags         task
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        task_id path int true "Task id"
// @Param        request body model.UpdateTaskRequest true "Fields to update"
// @Success      200 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Failure      409 {object} common.ResponseBody
// @Router       /api/v1/task/{task_id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := requesterID(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := taskID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateTaskRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	task, err := h.tasks.UpdateForUser(r.Context(), userID, id, req)
	if err != nil {
		return taskError(err)
	}

	common.WriteResponse(w, http.StatusOK, "Task updated successfully", task)
	return nil
}

// Delete godoc
// @Summary      Delete a task
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        task_id path int true "Task id"
// @Success      200 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Failure      409 {object} common.ResponseBody
// @Router       /api/v1/task/{task_id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := requesterID(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := taskID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.tasks.DeleteForUser(r.Context(), userID, id); err != nil {
		return taskError(err)
	}

	common.WriteResponse(w, http.StatusOK, "Task deleted successfully", nil)
	return nil
}

// ToggleDone godoc
// @Summary      Toggle a task's completion status
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        task_id path int true "Task id"
// @Success      200 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Failure      409 {object} common.ResponseBody
// @Router       /api/v1/task/{task_id}/toggle/status/is_done [put]
func (h *TaskHandler) ToggleDone(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := requesterID(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := taskID(r)
	if appErr != nil {
		return appErr
	}

	task, err := h.tasks.ToggleDoneForUser(r.Context(), userID, id)
	if err != nil {
		return taskError(err)
	}

	common.WriteResponse(w, http.StatusOK, "Task status changed successfully", task)
	return nil
}

package handler

import (
	"errors"
	"go-task-api/common"
	"go-task-api/model"
	"go-task-api/service"
	"net/http"
)

type UserHandler struct {
	users service.IUserService
}

func NewUserHandler(users service.IUserService) *UserHandler {
	return &UserHandler{users: users}
}

func userError(err error) *common.AppError {
	if errors.Is(err, service.ErrUserNotFound) {
		return common.NewAppError(http.StatusNotFound, "User not found", nil)
	}
	return common.NewAppError(http.StatusInternalServerError, "Error in server! Please try again later", err)
}

// GetMe godoc
// @Summary      Read the authenticated user's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Router       /api/v1/user [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return userError(err)
	}

	common.WriteResponse(w, http.StatusOK, "User found successfully", user)
	return nil
}

// Update godoc
// @Summary      Update the authenticated user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.UpdateUserRequest true "Fields to update"
// @Success      200 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Router       /api/v1/user [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
	}

	var req model.UpdateUserRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.users.Update(userID, req)
	if err != nil {
		return userError(err)
	}

	common.WriteResponse(w, http.StatusOK, "User updated successfully", user)
	return nil
}

// Delete godoc
// @Summary      Delete the authenticated user and its tasks
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Router       /api/v1/user [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
	}

	if err := h.users.Delete(userID); err != nil {
		return userError(err)
	}

	common.WriteResponse(w, http.StatusOK, "User deleted successfully", nil)
	return nil
}

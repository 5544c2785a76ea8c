package handler

import (
	"errors"
	"go-task-api/common"
	"go-task-api/logger"
	"go-task-api/model"
	"go-task-api/service"
	"net/http"
)

type AuthHandler struct {
	auth service.IAuthService
}

func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "New user"
// @Success      201 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      409 {object} common.ResponseBody
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	logger.Log.WithField("email", req.Email).Info("Register request received")

	tokens, err := h.auth.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return common.NewAppError(http.StatusConflict, "Email already in use", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error in server! Please try again later", err)
	}

	common.WriteResponse(w, http.StatusCreated, "Welcome", tokens)
	return nil
}

// Login godoc
// @Summary      Authenticate a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Credentials"
// @Success      200 {object} common.ResponseBody
// @Failure      400 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	tokens, err := h.auth.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			return common.NewAppError(http.StatusUnauthorized, "Login invalid", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error in server! Please try again later", err)
	}

	common.WriteResponse(w, http.StatusOK, "Welcome again", tokens)
	return nil
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Produce      json
// @Param        refresh_token path string true "Refresh token"
// @Success      200 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Router       /api/v1/auth/{refresh_token} [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	refreshToken := r.PathValue("refresh_token")

	tokens, err := h.auth.Refresh(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
		case errors.Is(err, service.ErrUserNotFound):
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Error in server! Please try again later", err)
		}
	}

	common.WriteResponse(w, http.StatusOK, "New tokens sent", tokens)
	return nil
}

// Revoke godoc
// @Summary      End the current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.ResponseBody
// @Failure      401 {object} common.ResponseBody
// @Failure      404 {object} common.ResponseBody
// @Router       /api/v1/auth/revoke [get]
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) *common.AppError {
	tokenString, ok := r.Context().Value(RawTokenKey).(string)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
	}

	if err := h.auth.Revoke(tokenString); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil)
		case errors.Is(err, service.ErrUserNotFound):
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Error in server! Please try again later", err)
		}
	}

	common.WriteResponse(w, http.StatusOK, "Bye bye", nil)
	return nil
}

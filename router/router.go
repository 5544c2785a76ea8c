package router

import (
	"go-task-api/handler"
	"go-task-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter wires every endpoint. Auth endpoints are public except revoke;
// user and task endpoints all sit behind the bearer middleware.
func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	tokens service.ITokenService,
) http.Handler {
	mux := http.NewServeMux()
	auth := handler.AuthMiddleware(tokens)

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.Handle("POST /api/v1/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/v1/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("GET /api/v1/auth/revoke", auth(handler.ErrorHandlingMiddleware(authHandler.Revoke)))
	mux.Handle("GET /api/v1/auth/{refresh_token}", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	mux.Handle("GET /api/v1/user", auth(handler.ErrorHandlingMiddleware(userHandler.GetMe)))
	mux.Handle("PUT /api/v1/user", auth(handler.ErrorHandlingMiddleware(userHandler.Update)))
	mux.Handle("DELETE /api/v1/user", auth(handler.ErrorHandlingMiddleware(userHandler.Delete)))

	mux.Handle("POST /api/v1/task", auth(handler.ErrorHandlingMiddleware(taskHandler.Create)))
	mux.Handle("GET /api/v1/task", auth(handler.ErrorHandlingMiddleware(taskHandler.List)))
	mux.Handle("GET /api/v1/task/{task_id}", auth(handler.ErrorHandlingMiddleware(taskHandler.Get)))
	mux.Handle("PUT /api/v1/task/{task_id}", auth(handler.ErrorHandlingMiddleware(taskHandler.Update)))
	mux.Handle("DELETE /api/v1/task/{task_id}", auth(handler.ErrorHandlingMiddleware(taskHandler.Delete)))
	mux.Handle("PUT /api/v1/task/{task_id}/toggle/status/is_done", auth(handler.ErrorHandlingMiddleware(taskHandler.ToggleDone)))

	return mux
}

package router

import (
	"go-recruit-api/handler"
	"go-recruit-api/model"
	"go-recruit-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-recruit-api/docs"
)

func NewRouter(authHandler *handler.AuthHandler, applicationHandler *handler.ApplicationHandler, wsHandler http.Handler, tokens service.ITokenService) http.Handler {
	mux := http.NewServeMux()

	authRequired := handler.AuthMiddleware(tokens)
	hrOnly := handler.RequireRole(model.RoleHR, model.RoleAdmin)

	mux.HandleFunc("/health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("/auth/logout", authRequired(handler.ErrorHandlingMiddleware(authHandler.Logout)))

	mux.Handle("GET /applications/{id}", authRequired(hrOnly(handler.ErrorHandlingMiddleware(applicationHandler.GetApplication))))

	// The channel handshake carries its token as a query parameter and does
	// its own verification, so it sits outside the bearer middleware.
	mux.Handle("/ws/message", wsHandler)

	return mux
}

package http

import "github.com/error7buddy/KiLagbe.Com/internal/users/service"

type Handler struct {
	userService *service.UserService
}

func New(userService *service.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}

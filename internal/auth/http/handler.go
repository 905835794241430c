package http

import "github.com/gin-gonic/gin"

type Handler struct {
	requireUser gin.HandlerFunc
}

// New takes the middleware that verifies the caller's ID token.
func New(requireUser gin.HandlerFunc) *Handler {
	return &Handler{
		requireUser: requireUser,
	}
}

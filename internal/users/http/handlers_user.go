package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
)

// FindOrCreate answers 201 when the user was created and 200 when it already existed.
func (h *Handler) FindOrCreate(c *gin.Context) {
	var req domain.FindOrCreateRequest
	if !httpx.BindOptionalJSON(c, &req) {
		return
	}

	user, created, err := h.userService.FindOrCreate(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpx.OK(c, status, gin.H{"user": user})
}

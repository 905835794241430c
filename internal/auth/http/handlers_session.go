package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/internal/auth"
)

// GetSession returns the identity carried by the verified ID token.
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, sessionResponse{
		Success: true,
		UID:     auth.UserFirebaseUID(c),
		Email:   auth.UserEmail(c),
		Admin:   auth.IsAdmin(c),
	})
}

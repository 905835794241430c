package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
)

// Recovery turns a panic into a JSON 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		httpx.Log(c).WithField("panic", recovered).Error("handler panicked")
		httpx.AbortFail(c, http.StatusInternalServerError, "Internal server error")
	})
}

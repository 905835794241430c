package http

import "github.com/gin-gonic/gin"

// Register mounts the shifting order routes. Booking is public; listing,
// completing and deleting run behind adminGuard.
func (h *Handler) Register(rg *gin.RouterGroup, adminGuard ...gin.HandlerFunc) {
	rg.POST("/shifting-orders", h.Create)

	admin := rg.Group("/shifting-orders", adminGuard...)
	admin.GET("", h.List)
	admin.PUT("", h.Update)
	admin.DELETE("", h.Delete)

	admin.PUT("/:id/complete", h.Complete)
	admin.DELETE("/:id", h.Delete)
}

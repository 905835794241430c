package http

import "github.com/gin-gonic/gin"

// Register mounts the ad routes. The query-string form is the primary API; the
// path-style routes are kept for older clients. Quota maintenance runs behind
// adminGuard.
func (h *Handler) Register(rg *gin.RouterGroup, adminGuard ...gin.HandlerFunc) {
	rg.GET("/ads", h.Get)
	rg.POST("/ads", h.Create)
	rg.PUT("/ads", h.Update)
	rg.DELETE("/ads", h.Delete)

	rg.GET("/ads/user/:userId", h.ListByUser)
	rg.DELETE("/ads/:id", h.Delete)

	admin := rg.Group("/ads/quotas", adminGuard...)
	admin.POST("/reconcile", h.ReconcileQuotas)
}

package routes

import (
	"github.com/gin-gonic/gin"

	adshttp "github.com/error7buddy/KiLagbe.Com/internal/ads/http"
	adsservice "github.com/error7buddy/KiLagbe.Com/internal/ads/service"
	authhttp "github.com/error7buddy/KiLagbe.Com/internal/auth/http"
	authmw "github.com/error7buddy/KiLagbe.Com/internal/auth/middleware"
	shiftinghttp "github.com/error7buddy/KiLagbe.Com/internal/shifting/http"
	shiftingservice "github.com/error7buddy/KiLagbe.Com/internal/shifting/service"
	uploadshttp "github.com/error7buddy/KiLagbe.Com/internal/uploads/http"
	usershttp "github.com/error7buddy/KiLagbe.Com/internal/users/http"
	usersservice "github.com/error7buddy/KiLagbe.Com/internal/users/service"
)

type APIDeps struct {
	AdService    *adsservice.AdService
	OrderService *shiftingservice.OrderService
	UserService  *usersservice.UserService

	// Uploads is optional.
	Uploads *uploadshttp.Handler

	// Verifier is nil when Firebase is not configured; admin routes are then open.
	Verifier authmw.TokenVerifier
}

func RegisterAPI(api *gin.RouterGroup, dep APIDeps) {
	adshttp.New(dep.AdService).Register(api, authmw.AdminGuard(dep.Verifier)...)
	shiftinghttp.New(dep.OrderService).Register(api, authmw.AdminGuard(dep.Verifier)...)
	usershttp.New(dep.UserService).Register(api)
	authhttp.New(authmw.FirebaseAuthMiddleware(dep.Verifier)).Register(api)

	if dep.Uploads != nil {
		dep.Uploads.Register(api)
	}
}

package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/config"
	adsservice "github.com/error7buddy/KiLagbe.Com/internal/ads/service"
	httpapi "github.com/error7buddy/KiLagbe.Com/internal/api/http"
	"github.com/error7buddy/KiLagbe.Com/internal/api/http/middleware"
	"github.com/error7buddy/KiLagbe.Com/internal/api/http/routes"
	authmw "github.com/error7buddy/KiLagbe.Com/internal/auth/middleware"
	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
	shiftingservice "github.com/error7buddy/KiLagbe.Com/internal/shifting/service"
	"github.com/error7buddy/KiLagbe.Com/internal/uploads"
	uploadshttp "github.com/error7buddy/KiLagbe.Com/internal/uploads/http"
	usersservice "github.com/error7buddy/KiLagbe.Com/internal/users/service"
)

type RouterDeps struct {
	Config *config.Config
	Log    *logrus.Logger
	Stores *Stores

	// Optional collaborators. A nil Limiter disables rate limiting, a nil
	// Verifier disables token checks and a nil Images disables POST /uploads.
	Limiter        middleware.Limiter
	Verifier       authmw.TokenVerifier
	Images         uploads.Storage
	LocalUploadDir string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(httpx.MethodNotAllowed)
	r.NoRoute(httpx.NotFoundRoute)

	r.Use(
		middleware.Recovery(),
		middleware.RequestIDMiddleware(dep.Log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
		middleware.Preflight(),
	)

	healthHandler := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, dep.Stores.Driver, dep.Stores.DB)
	healthHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if dep.LocalUploadDir != "" {
		r.Static(uploads.URLPrefix, dep.LocalUploadDir)
	}

	api := r.Group("/api")
	if dep.Limiter != nil {
		api.Use(middleware.RateLimit(dep.Limiter))
	}

	var uploadHandler *uploadshttp.Handler
	if dep.Images != nil {
		uploadHandler = uploadshttp.New(dep.Images, cfg.Images.MaxFiles, cfg.Images.MaxFileSize, dep.Log)
	}

	routes.RegisterAPI(api, routes.APIDeps{
		AdService:    adsservice.NewAdService(dep.Stores.Ads, cfg.App.FreeAdLimit, dep.Log),
		OrderService: shiftingservice.NewOrderService(dep.Stores.Orders, dep.Log),
		UserService:  usersservice.NewUserService(dep.Stores.Users, dep.Log),
		Uploads:      uploadHandler,
		Verifier:     dep.Verifier,
	})

	return r
}

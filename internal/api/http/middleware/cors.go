package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/config"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Origin", "Content-Type", "Authorization", HeaderRequestID}
)

// CORS echoes configured origins back. Requests with any other Origin, or none,
// are answered with the first configured origin, which browsers on other sites
// will not accept.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	listed := cors.New(cors.Config{
		AllowOrigins:              cfg.Origins,
		AllowMethods:              corsMethods,
		AllowHeaders:              corsHeaders,
		ExposeHeaders:             []string{HeaderRequestID},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	})

	allowed := make(map[string]bool, len(cfg.Origins))
	for _, o := range cfg.Origins {
		allowed[o] = true
	}
	var defaultOrigin string
	if len(cfg.Origins) > 0 {
		defaultOrigin = cfg.Origins[0]
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			listed(c)
			return
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if defaultOrigin != "" {
			h.Set("Access-Control-Allow-Origin", defaultOrigin)
		}
		h.Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ","))
		h.Set("Access-Control-Allow-Headers", strings.Join(corsHeaders, ","))
		h.Set("Access-Control-Expose-Headers", HeaderRequestID)
		c.Next()
	}
}

// Preflight answers any OPTIONS request that reaches it with 200 and no body.
// It runs after CORS, which already answers OPTIONS from configured origins.
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview-backend/internal/documents"
	"docreview-backend/internal/shared/config"
	"docreview-backend/internal/shared/metrics"
	"docreview-backend/internal/shared/server/middleware"
	"docreview-backend/internal/shared/server/respond"
)

const rateLimitGroupUpload = "UPLOAD"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				// Uploads run the whole pipeline including the model call,
				// so they get a much smaller budget.
				rateLimitGroupUpload: {Rate: 0.5, Burst: 5},
				"DEFAULT":            {Rate: 20, Burst: 40},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/documents" {
					return rateLimitGroupUpload
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

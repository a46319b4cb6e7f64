package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catdocs-backend/internal/documents"
	"catdocs-backend/internal/services/health"
	"catdocs-backend/internal/shared/config"
	"catdocs-backend/internal/shared/metrics"
	"catdocs-backend/internal/shared/server/middleware"
	"catdocs-backend/internal/shared/server/respond"
	"catdocs-backend/internal/users"
)

// RouterDeps holds everything route registration needs. Handlers are built in
// bootstrap so tests can swap repositories without touching routing.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	DocumentHandler *documents.Handler
	UserHandler     *users.Handler
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
	)

	// Health stays outside the identity check so probes need no headers.
	r.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.Use(middleware.Identity())
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
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
